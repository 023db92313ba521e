package pattern

import "testing"

func TestAtomConstructors(t *testing.T) {
	if n := NewChar('x'); n.Kind != KindAtom || n.AtomKind != AtomChar || n.Char != 'x' {
		t.Fatalf("NewChar() = %+v, want Atom/AtomChar/'x'", n)
	}
	if n := NewScalar('y'); n.AtomKind != AtomScalar || n.Scalar != 'y' {
		t.Fatalf("NewScalar() = %+v, want AtomScalar/'y'", n)
	}
	if n := NewBuiltinClass(ClassDigit); n.AtomKind != AtomCharacterClass || n.Builtin != ClassDigit {
		t.Fatalf("NewBuiltinClass() = %+v, want AtomCharacterClass/ClassDigit", n)
	}
	if n := NewAssertion(AssertWordBoundary); n.AtomKind != AtomAssertion || n.Assertion != AssertWordBoundary {
		t.Fatalf("NewAssertion() = %+v, want AtomAssertion/AssertWordBoundary", n)
	}
	ref := Backreference{Kind: BackrefNamed, Name: "year"}
	if n := NewBackreference(ref); n.AtomKind != AtomBackreference || n.Backref != ref {
		t.Fatalf("NewBackreference() = %+v, want AtomBackreference/%+v", n, ref)
	}
	if n := NewSymbolicReference(7); n.AtomKind != AtomSymbolicReference || n.SymbolicID != 7 {
		t.Fatalf("NewSymbolicReference() = %+v, want AtomSymbolicReference/7", n)
	}
	seq := []OptionChange{{Field: OptionCaseInsensitive, Enable: true}}
	if n := NewOptionsChangeAtom(seq); n.AtomKind != AtomChangeMatchingOptions || len(n.OptionSeq) != 1 {
		t.Fatalf("NewOptionsChangeAtom() = %+v, want AtomChangeMatchingOptions with 1 change", n)
	}
	if n := NewUnconverted("posix:alpha"); n.AtomKind != AtomUnconverted || n.Custom != "posix:alpha" {
		t.Fatalf("NewUnconverted() = %+v, want AtomUnconverted/\"posix:alpha\"", n)
	}
}

func TestCaptureConstructor(t *testing.T) {
	child := NewChar('a')
	n := NewCapture("year", 3, child, nil)
	if n.Kind != KindCapture || n.Name != "year" || n.RefID != 3 || n.Child != child {
		t.Fatalf("NewCapture() = %+v, unexpected fields", n)
	}
}

func TestGroupConstructors(t *testing.T) {
	child := NewChar('a')
	if n := NewNonCapturingGroup(GroupAtomicNonCapturing, child); n.Kind != KindNonCapturingGroup ||
		n.GroupKind != GroupAtomicNonCapturing || n.Child != child {
		t.Fatalf("NewNonCapturingGroup() = %+v, unexpected fields", n)
	}
	seq := []OptionChange{{Field: OptionDotMatchesNewline, Enable: true}}
	if n := NewOptionsGroup(seq, child); n.GroupKind != GroupChangeMatchingOptions || len(n.OptionSeq) != 1 {
		t.Fatalf("NewOptionsGroup() = %+v, unexpected fields", n)
	}
}

func TestKindString(t *testing.T) {
	if KindAtom.String() != "Atom" {
		t.Fatalf("Kind.String() = %q, want %q", KindAtom.String(), "Atom")
	}
	if Kind(255).String() != "Unknown" {
		t.Fatalf("Kind(255).String() = %q, want %q", Kind(255).String(), "Unknown")
	}
}
