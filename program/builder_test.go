package program

import (
	"testing"

	"github.com/coregx/rxcompile/opcode"
	"github.com/coregx/rxcompile/pattern"
)

func wholeMatchCaptures() *pattern.CaptureList {
	return pattern.NewCaptureList([]pattern.CaptureInfo{{Index: 0}})
}

func TestForwardLabelFixup(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	done := b.MakeAddress()
	b.EmitBranch(done)
	b.EmitNop()
	b.Label(done)
	b.EmitAccept()

	prog, err := b.Assemble(DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	branch := prog.Instructions[0]
	if branch.Opcode() != opcode.OpBranch {
		t.Fatalf("expected branch, got %v", branch.Opcode())
	}
	if addr := opcode.UnpackAddrOnly(branch.Payload()); addr != 2 {
		t.Fatalf("branch target = %d, want 2", addr)
	}
}

func TestUnresolvedLabelIsBuildError(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	tok := b.MakeAddress()
	b.EmitBranch(tok) // never labeled
	if _, err := b.Assemble(DefaultOptions()); err == nil {
		t.Fatal("expected BuildError for unresolved label, got nil")
	} else if _, ok := err.(*BuildError); !ok {
		t.Fatalf("expected *BuildError, got %T: %v", err, err)
	}
}

func TestSplitSavingPatchesBothAddresses(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	to := b.MakeAddress()
	saving := b.MakeAddress()
	b.EmitSplitSaving(to, saving)
	b.Label(to)
	b.EmitNop()
	b.Label(saving)
	b.EmitAccept()

	prog, err := b.Assemble(DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	gotTo, gotSaving := opcode.UnpackSplitSaving(prog.Instructions[0].Payload())
	if gotTo != 1 || gotSaving != 2 {
		t.Fatalf("splitSaving = (%d, %d), want (1, 2)", gotTo, gotSaving)
	}
}

func TestUncapturedSymbolicReference(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	b.BuildUnresolvedReference(42)
	b.EmitAccept()

	_, err := b.Assemble(DefaultOptions())
	if err == nil {
		t.Fatal("expected UncapturedReferenceError, got nil")
	}
	uerr, ok := err.(*UncapturedReferenceError)
	if !ok {
		t.Fatalf("expected *UncapturedReferenceError, got %T", err)
	}
	if uerr.ID != 42 {
		t.Fatalf("ID = %d, want 42", uerr.ID)
	}
}

func TestSymbolicReferenceResolves(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	cap := b.AllocCaptureReg()
	b.RecordCaptureRef(7, int(cap))
	b.BuildUnresolvedReference(7)
	b.EmitAccept()

	prog, err := b.Assemble(DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := opcode.UnpackReg(prog.Instructions[0].Payload())
	if got != int(cap) {
		t.Fatalf("resolved capture index = %d, want %d", got, cap)
	}
}

func TestPushEmptySavePointSharesSink(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	b.PushEmptySavePoint()
	b.EmitNop()
	b.PushEmptySavePoint()
	b.EmitAccept()

	prog, err := b.Assemble(DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	first := opcode.UnpackAddrOnly(prog.Instructions[0].Payload())
	second := opcode.UnpackAddrOnly(prog.Instructions[2].Payload())
	if first != second {
		t.Fatalf("two pushEmptySavePoint calls should share one sink, got %d and %d", first, second)
	}
	if prog.Instructions[first].Opcode() != opcode.OpFail {
		t.Fatalf("sink instruction should be fail, got %v", prog.Instructions[first].Opcode())
	}
}

func TestOptionsScopeDoesNotLeak(t *testing.T) {
	s := NewOptionsStack(DefaultOptions())
	s.BeginScope()
	s.Apply([]pattern.OptionChange{{Field: pattern.OptionCaseInsensitive, Enable: true}})
	if !s.Top().CaseInsensitive {
		t.Fatal("expected CaseInsensitive set inside scope")
	}
	s.EndScope()
	if s.Top().CaseInsensitive {
		t.Fatal("option change leaked past EndScope")
	}
}

func TestInternerDeduplicates(t *testing.T) {
	in := newInterner[string]()
	a := in.Intern("x")
	b2 := in.Intern("y")
	c := in.Intern("x")
	if a != c {
		t.Fatalf("expected repeated intern of equal value to reuse index: %d != %d", a, c)
	}
	if a == b2 {
		t.Fatalf("expected distinct values to get distinct indices")
	}
}

func TestIntRegInitialValuesRecorded(t *testing.T) {
	b := NewBuilder(wholeMatchCaptures())
	minReg := b.AllocIntRegWithInitial(3)
	extraReg := b.AllocIntRegWithInitial(7)
	b.EmitAccept()

	prog, err := b.Assemble(DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := prog.IntRegInitialValues[minReg]; got != 3 {
		t.Fatalf("IntRegInitialValues[minReg] = %d, want 3", got)
	}
	if got := prog.IntRegInitialValues[extraReg]; got != 7 {
		t.Fatalf("IntRegInitialValues[extraReg] = %d, want 7", got)
	}
	if minReg == extraReg {
		t.Fatal("expected distinct registers for distinct allocations")
	}
}
