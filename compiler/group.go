package compiler

import "github.com/coregx/rxcompile/pattern"

// emitGroup dispatches a NonCapturingGroup by kind per spec §4.4, pushing
// an option scope around every variant (a changeMatchingOptions group's
// own changes are applied inside that same scope, matching the teacher's
// exit-path-guaranteed scoping in nfa's option handling).
func (g *Generator) emitGroup(n *pattern.Node) error {
	g.opts.BeginScope()
	defer g.opts.EndScope()

	switch n.GroupKind {
	case pattern.GroupLookahead:
		return g.emitLookaround(n.Child, false)
	case pattern.GroupNegativeLookahead:
		return g.emitLookaround(n.Child, true)
	case pattern.GroupLookbehind:
		return &UnsupportedError{Feature: "lookbehind"}
	case pattern.GroupNegativeLookbehind:
		return &UnsupportedError{Feature: "negativeLookbehind"}
	case pattern.GroupChangeMatchingOptions:
		g.applyOptionChanges(n.OptionSeq)
		return g.emitNode(n.Child)
	case pattern.GroupAtomicNonCapturing:
		return g.emitAtomic(n.Child)
	default: // GroupPlain
		return g.emitNode(n.Child)
	}
}

// emitLookaround lowers lookahead/negativeLookahead per spec §4.4: the
// child always runs with its input position rewound afterward, regardless
// of which way it went; negative flips which outcome is "success".
func (g *Generator) emitLookaround(child *pattern.Node, negative bool) error {
	success := g.b.MakeAddress()
	intercept := g.b.MakeAddress()

	g.b.EmitSave(success)
	g.b.EmitSave(intercept)
	if err := g.emitNode(child); err != nil {
		return err
	}
	g.b.EmitClearThrough(intercept)
	if negative {
		g.b.EmitClear()
	}
	g.b.EmitFail()

	g.b.Label(intercept)
	if !negative {
		g.b.EmitClear()
	}
	g.b.EmitFail()

	g.b.Label(success)
	return nil
}

// emitAtomic lowers an atomic non-capturing group per spec §4.4: a
// successful child commits via saveAddress (not save), so backtracking
// can never re-enter its internals.
func (g *Generator) emitAtomic(child *pattern.Node) error {
	success := g.b.MakeAddress()
	intercept := g.b.MakeAddress()

	g.b.EmitSaveAddress(success)
	g.b.EmitSave(intercept)
	if err := g.emitNode(child); err != nil {
		return err
	}
	g.b.EmitClearThrough(intercept)
	g.b.EmitFail()

	g.b.Label(intercept)
	g.b.EmitClear()
	g.b.EmitFail()

	g.b.Label(success)
	return nil
}
