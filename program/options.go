package program

import "github.com/coregx/rxcompile/pattern"

// Options is one scope's worth of matching-option flags (spec §4.3).
type Options struct {
	CaseInsensitive             bool
	DotMatchesNewline           bool
	AnchorsMatchNewlines        bool
	SemanticLevel               pattern.SemanticLevel
	DefaultQuantificationKind   pattern.QuantifierKind
	UsesSimpleUnicodeBoundaries bool
	UsesASCIIWord               bool
}

// DefaultOptions mirrors a freshly-started pattern with no leading option
// changes: grapheme-cluster semantics, eager default quantification,
// everything else off.
func DefaultOptions() Options {
	return Options{
		SemanticLevel:             pattern.GraphemeCluster,
		DefaultQuantificationKind: pattern.QuantEager,
	}
}

// Apply mutates o in place per a changeMatchingOptions sequence.
func (o *Options) Apply(changes []pattern.OptionChange) {
	for _, c := range changes {
		switch c.Field {
		case pattern.OptionCaseInsensitive:
			o.CaseInsensitive = c.Enable
		case pattern.OptionDotMatchesNewline:
			o.DotMatchesNewline = c.Enable
		case pattern.OptionAnchorsMatchNewlines:
			o.AnchorsMatchNewlines = c.Enable
		case pattern.OptionSemanticLevel:
			o.SemanticLevel = c.SemanticLevel
		case pattern.OptionDefaultQuantifierKind:
			o.DefaultQuantificationKind = c.QuantifierKind
		case pattern.OptionSimpleUnicodeBoundaries:
			o.UsesSimpleUnicodeBoundaries = c.Enable
		case pattern.OptionASCIIWord:
			o.UsesASCIIWord = c.Enable
		}
	}
}

// OptionsStack is a scoped stack of Options. beginScope/endScope bracket
// the lexical subtree of a group that introduces an option change, so
// writes inside never leak past the group that made them (spec §4.3,
// tested by spec §8 property 3).
type OptionsStack struct {
	stack []Options
}

// NewOptionsStack starts a stack with a single scope holding initial.
func NewOptionsStack(initial Options) *OptionsStack {
	return &OptionsStack{stack: []Options{initial}}
}

// Top returns the current scope's options.
func (s *OptionsStack) Top() Options {
	return s.stack[len(s.stack)-1]
}

// BeginScope pushes a copy of the current top, so changes made after this
// call are local to the new scope until EndScope.
func (s *OptionsStack) BeginScope() {
	s.stack = append(s.stack, s.Top())
}

// EndScope pops the current scope, discarding any option changes made
// within it. Callers must pair every BeginScope with exactly one EndScope,
// including along error-return paths (spec §4.3: "exit-path-guaranteed").
func (s *OptionsStack) EndScope() {
	s.stack = s.stack[:len(s.stack)-1]
}

// Apply applies changes to the current top-of-stack scope only.
func (s *OptionsStack) Apply(changes []pattern.OptionChange) {
	top := s.Top()
	top.Apply(changes)
	s.stack[len(s.stack)-1] = top
}
