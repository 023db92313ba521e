// Package pattern defines the intermediate pattern tree consumed by the
// code generator: a tagged-variant representation of an already-parsed
// regular expression, independent of any concrete surface syntax.
//
// A Node plays the same role here that a regexp/syntax.Regexp plays for
// the teacher NFA compiler, except it also carries the constructs a
// backtracking VM with save points needs that a DFA-oriented engine does
// not: greediness kinds, lookaround, atomic groups, capture transforms,
// and symbolic backreferences.
package pattern

// Kind tags which variant a Node holds. Only the fields documented for a
// given Kind are valid to read; this mirrors the teacher's State/StateKind
// split in nfa/nfa.go rather than a Go interface-based sum type, since the
// node shape here is fixed and dense field access matters more than
// exhaustive type-switch safety.
type Kind uint8

const (
	KindConcatenation Kind = iota
	KindOrderedChoice
	KindCapture
	KindNonCapturingGroup
	KindQuantification
	KindAtom
	KindCustomCharacterClass
	KindQuotedLiteral
	KindMatcher
	KindTrivia
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindConcatenation:
		return "Concatenation"
	case KindOrderedChoice:
		return "OrderedChoice"
	case KindCapture:
		return "Capture"
	case KindNonCapturingGroup:
		return "NonCapturingGroup"
	case KindQuantification:
		return "Quantification"
	case KindAtom:
		return "Atom"
	case KindCustomCharacterClass:
		return "CustomCharacterClass"
	case KindQuotedLiteral:
		return "QuotedLiteral"
	case KindMatcher:
		return "Matcher"
	case KindTrivia:
		return "Trivia"
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// NoRef is the sentinel for an unset capture ref id / symbolic id.
const NoRef = -1

// Unbounded is the sentinel for Quantification.High meaning "no upper bound".
const Unbounded = -1

// Node is a single pattern-tree node. Kind-irrelevant fields are zero.
type Node struct {
	Kind Kind

	// Concatenation, OrderedChoice
	Children []*Node

	// Capture, NonCapturingGroup, Quantification: the single child.
	Child *Node

	// Capture
	Name      string // "" if unnamed
	RefID     int    // NoRef if this capture is never the target of a symbolicReference
	Transform TransformFunc

	// NonCapturingGroup
	GroupKind GroupKind
	OptionSeq []OptionChange // GroupKind == GroupChangeMatchingOptions, or an AtomChangeMatchingOptions atom

	// Quantification
	Low       int
	High      int // Unbounded if no upper bound
	QuantKind QuantifierKind

	// Atom
	AtomKind   AtomKind
	Char       rune
	Scalar     rune
	Builtin    BuiltinClass
	Assertion  AssertionKind
	Backref    Backreference
	SymbolicID int
	Custom     string // AtomUnconverted descriptor

	// CustomCharacterClass
	CCC CustomCharacterClass

	// QuotedLiteral
	Literal string

	// Matcher
	MatcherFn MatcherFunc
}

// TransformFunc is a post-match transform attached to a Capture. It runs on
// either the captured substring or, when a Matcher overrode the captured
// value, a reconstruction of that value (see spec §4.4's Capture contract
// and the open question in §9 about a cleaner contract for this case).
type TransformFunc func(substring string, overriddenValue any, hasOverride bool) (any, error)

// MatcherFunc is a user-supplied matcher invoked by matchBy. It reports the
// new input position and an arbitrary captured value, or ok=false to fail.
type MatcherFunc func(input string, pos int) (newPos int, value any, ok bool)

// ConsumeFunc is a single-step consumer used for `any` in scalar mode, for
// anyNonNewline in either mode, and for character classes not lowered to
// matchBitset. It reports the new position, or ok=false if it could not
// consume here.
type ConsumeFunc func(input string, pos int) (newPos int, ok bool)

func NewConcatenation(children ...*Node) *Node {
	return &Node{Kind: KindConcatenation, Children: children}
}

func NewOrderedChoice(children ...*Node) *Node {
	return &Node{Kind: KindOrderedChoice, Children: children}
}

func NewCapture(name string, refID int, child *Node, transform TransformFunc) *Node {
	return &Node{Kind: KindCapture, Name: name, RefID: refID, Child: child, Transform: transform}
}

func NewNonCapturingGroup(kind GroupKind, child *Node) *Node {
	return &Node{Kind: KindNonCapturingGroup, GroupKind: kind, Child: child}
}

// NewOptionsGroup builds the `changeMatchingOptions(seq)` NonCapturingGroup
// variant, which carries its option changes on OptionSeq rather than on the
// GroupKind value alone.
func NewOptionsGroup(seq []OptionChange, child *Node) *Node {
	return &Node{Kind: KindNonCapturingGroup, GroupKind: GroupChangeMatchingOptions, OptionSeq: seq, Child: child}
}

func NewQuantification(low, high int, kind QuantifierKind, child *Node) *Node {
	return &Node{Kind: KindQuantification, Low: low, High: high, QuantKind: kind, Child: child}
}

func NewCustomCharacterClass(ccc CustomCharacterClass) *Node {
	return &Node{Kind: KindCustomCharacterClass, CCC: ccc}
}

func NewQuotedLiteral(s string) *Node {
	return &Node{Kind: KindQuotedLiteral, Literal: s}
}

func NewMatcher(fn MatcherFunc) *Node {
	return &Node{Kind: KindMatcher, MatcherFn: fn}
}

func NewTrivia() *Node { return &Node{Kind: KindTrivia} }
func NewEmpty() *Node  { return &Node{Kind: KindEmpty} }

func atom(k AtomKind) *Node { return &Node{Kind: KindAtom, AtomKind: k} }

func NewAny() *Node            { return atom(AtomAny) }
func NewAnyNonNewline() *Node  { return atom(AtomAnyNonNewline) }
func NewDot() *Node            { return atom(AtomDot) }
func NewChar(c rune) *Node     { n := atom(AtomChar); n.Char = c; return n }
func NewScalar(s rune) *Node   { n := atom(AtomScalar); n.Scalar = s; return n }
func NewBuiltinClass(b BuiltinClass) *Node {
	n := atom(AtomCharacterClass)
	n.Builtin = b
	return n
}
func NewAssertion(kind AssertionKind) *Node {
	n := atom(AtomAssertion)
	n.Assertion = kind
	return n
}
func NewBackreference(ref Backreference) *Node {
	n := atom(AtomBackreference)
	n.Backref = ref
	return n
}
func NewSymbolicReference(id int) *Node {
	n := atom(AtomSymbolicReference)
	n.SymbolicID = id
	return n
}
func NewOptionsChangeAtom(seq []OptionChange) *Node {
	n := atom(AtomChangeMatchingOptions)
	n.OptionSeq = seq
	return n
}
func NewUnconverted(descriptor string) *Node {
	n := atom(AtomUnconverted)
	n.Custom = descriptor
	return n
}

// IsMatchableAtom reports whether this atom consumes input or asserts on
// it, as opposed to a pure option-change directive (spec §3:
// "changeMatchingOptions is NOT matchable"). Only meaningful for
// KindAtom nodes; the code generator tracks whether any matchable atom
// has been emitted yet as sequential compiler state, since matchability
// is a property of what has actually been lowered so far, not a static
// property of a subtree.
func (n *Node) IsMatchableAtom() bool {
	return n.Kind == KindAtom && n.AtomKind != AtomChangeMatchingOptions
}
