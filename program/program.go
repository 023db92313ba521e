package program

import (
	"fmt"
	"strings"

	"github.com/coregx/rxcompile/opcode"
	"github.com/coregx/rxcompile/pattern"
)

// Program is the immutable artifact produced by Assemble (spec §6,
// "Downstream (produced)"). Once returned, the Builder that built it is
// discarded; a Program may be shared freely and read concurrently by
// matching engines, per spec §5.
type Program struct {
	Instructions []opcode.Instruction

	Elements  []rune
	Sequences []string
	Strings   []string

	ConsumeFuncs   []pattern.ConsumeFunc
	AssertionFuncs []AssertionOracle
	TransformFuncs []pattern.TransformFunc
	MatcherFuncs   []pattern.MatcherFunc
	Bitsets        []*pattern.ASCIIBitset

	Registers RegisterCounts
	Captures  *pattern.CaptureList

	// IntRegInitialValues gives the reset value for each IntReg used as a
	// quantifier trip counter; a VM resets these registers to their
	// recorded value before the scaffold that owns them first runs
	// (spec §4.4's %min/%extra).
	IntRegInitialValues map[IntReg]int

	// ReferencedCaptureOffsets maps a symbolicReference id to the capture
	// index it resolved to (spec §4.2).
	ReferencedCaptureOffsets map[int]int

	InitialOptions Options

	// PrefilterHint is optional compile-time literal-prefilter metadata a
	// downstream VM may, but need not, consult before executing the
	// bytecode (see literalhint package and SPEC_FULL.md's domain stack
	// section). Nil when no useful literal hint could be extracted.
	PrefilterHint any
}

// AssertionOracle is a grapheme/word-boundary oracle function supplied by
// the environment and referenced by assertBy (spec §4.4: "grapheme-cluster
// boundary oracle", "word-boundary oracle"). The compiler never implements
// these itself — it only interns whichever oracle the caller provided and
// emits a register reference to it.
type AssertionOracle func(input string, pos int) bool

// Disassemble renders one line per instruction as "addr: opname payload",
// the ambient debug-dump texture every backend in this style carries
// (SPEC_FULL.md "Supplemented features"; grounded on the teacher's
// State.String() in nfa/nfa.go).
func (p *Program) Disassemble() string {
	var b strings.Builder
	for addr, inst := range p.Instructions {
		fmt.Fprintf(&b, "%4d: %s\n", addr, disassembleOne(inst))
	}
	return b.String()
}

func disassembleOne(inst opcode.Instruction) string {
	op := inst.Opcode()
	pl := inst.Payload()
	switch op {
	case opcode.OpBranch, opcode.OpSave, opcode.OpSaveAddress, opcode.OpClearThrough:
		return fmt.Sprintf("%s %d", op, opcode.UnpackAddrOnly(pl))
	case opcode.OpCondBranchZeroElseDecrement, opcode.OpCondBranchSamePosition:
		addr, reg := opcode.UnpackAddrReg(pl)
		return fmt.Sprintf("%s %d, r%d", op, addr, reg)
	case opcode.OpSplitSaving:
		to, saving := opcode.UnpackSplitSaving(pl)
		return fmt.Sprintf("%s to=%d saving=%d", op, to, saving)
	case opcode.OpNop, opcode.OpAccept, opcode.OpFail, opcode.OpClear:
		return op.String()
	case opcode.OpMoveCurrentPosition, opcode.OpBeginCapture, opcode.OpEndCapture,
		opcode.OpBackreference, opcode.OpConsumeBy:
		return fmt.Sprintf("%s r%d", op, opcode.UnpackReg(pl))
	case opcode.OpAdvance:
		return fmt.Sprintf("%s %d", op, opcode.UnpackAdvance(pl))
	case opcode.OpMatch:
		reg, ci := opcode.UnpackMatch(pl)
		return fmt.Sprintf("%s r%d ci=%v", op, reg, ci)
	case opcode.OpMatchScalar:
		scalar, ci, bc := opcode.UnpackMatchScalar(pl)
		return fmt.Sprintf("%s %q ci=%v bc=%v", op, scalar, ci, bc)
	case opcode.OpMatchBitset:
		reg, isScalar := opcode.UnpackMatchBitset(pl)
		return fmt.Sprintf("%s r%d scalar=%v", op, reg, isScalar)
	case opcode.OpMatchBuiltin:
		class, strictAscii, isScalar := opcode.UnpackMatchBuiltin(pl)
		return fmt.Sprintf("%s class=%d ascii=%v scalar=%v", op, class, strictAscii, isScalar)
	case opcode.OpAssertBy:
		kind, anchorsNL, simple, asciiWord, isScalar, oracle := opcode.UnpackAssert(pl)
		return fmt.Sprintf("%s kind=%d anchorsNL=%v simple=%v asciiWord=%v scalar=%v oracle=r%d",
			op, kind, anchorsNL, simple, asciiWord, isScalar, oracle)
	case opcode.OpMatchBy:
		matcherReg, valueReg := opcode.UnpackMatchBy(pl)
		return fmt.Sprintf("%s r%d -> r%d", op, matcherReg, valueReg)
	case opcode.OpCaptureValue:
		valueReg, capReg := opcode.UnpackCaptureValue(pl)
		return fmt.Sprintf("%s r%d -> cap%d", op, valueReg, capReg)
	case opcode.OpTransformCapture:
		capReg, transformReg := opcode.UnpackTransformCapture(pl)
		return fmt.Sprintf("%s cap%d r%d", op, capReg, transformReg)
	case opcode.OpQuantify:
		kind, minTrips, extraTrips, variant, data := opcode.UnpackQuantify(pl)
		return fmt.Sprintf("%s kind=%d min=%d extra=%d variant=%d data=%d", op, kind, minTrips, extraTrips, variant, data)
	default:
		return fmt.Sprintf("%s 0x%x", op, pl)
	}
}
