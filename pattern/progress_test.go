package pattern

import "testing"

func TestGuaranteesForwardProgress(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		want bool
	}{
		{"nilNode", nil, false},
		{"char", NewChar('a'), true},
		{"quotedLiteral", NewQuotedLiteral("abc"), true},
		{"emptyQuotedLiteral", NewQuotedLiteral(""), false},
		{"assertion", NewAssertion(AssertWordBoundary), false},
		{"optionsChange", NewOptionsChangeAtom(nil), false},
		{"matcher", NewMatcher(nil), false},
		{"optionalQuantification", NewQuantification(0, 1, QuantEager, NewChar('a')), false},
		{"requiredQuantification", NewQuantification(1, Unbounded, QuantEager, NewChar('a')), true},
		{
			"concatenationAnyProgressingChild",
			NewConcatenation(NewAssertion(AssertWordBoundary), NewChar('a')),
			true,
		},
		{
			"concatenationAllZeroWidth",
			NewConcatenation(NewAssertion(AssertWordBoundary), NewAssertion(AssertEndOfSubject)),
			false,
		},
		{
			"choiceAllProgress",
			NewOrderedChoice(NewChar('a'), NewChar('b')),
			true,
		},
		{
			"choiceOneBranchEmpty",
			NewOrderedChoice(NewChar('a'), NewQuantification(0, 1, QuantEager, NewChar('b'))),
			false,
		},
		{
			"lookaheadNeverProgresses",
			NewNonCapturingGroup(GroupLookahead, NewChar('a')),
			false,
		},
		{
			"atomicPassesThroughChild",
			NewNonCapturingGroup(GroupAtomicNonCapturing, NewChar('a')),
			true,
		},
		{
			"captureTransparent",
			NewCapture("", NoRef, NewChar('a'), nil),
			true,
		},
		{
			"customCharacterClass",
			NewCustomCharacterClass(CustomCharacterClass{Members: []rune{'a'}}),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuaranteesForwardProgress(tt.n); got != tt.want {
				t.Fatalf("GuaranteesForwardProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}
