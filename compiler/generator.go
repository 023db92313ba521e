// Package compiler implements the code generator: recursive lowering of a
// pattern tree (package pattern) into a linear instruction sequence
// (package opcode/program) for a backtracking matcher. See program.Builder
// for the low-level emission API this package drives.
package compiler

import (
	"fmt"

	"github.com/coregx/rxcompile/pattern"
	"github.com/coregx/rxcompile/program"
)

// Generator walks a pattern tree once, depth-first, emitting instructions
// through a program.Builder as it goes. A Generator is single-use: create
// one per call to EmitRoot.
type Generator struct {
	config Config

	b    *program.Builder
	opts *program.OptionsStack

	// initialOptions accumulates option changes emitted before the first
	// matchable atom (spec §4.3); everything after only reaches the
	// scoped Options stack in opts.
	initialOptions    program.Options
	seenMatchableAtom bool

	depth int
}

// New creates a Generator with the given Config.
func New(config Config) *Generator {
	return &Generator{config: config}
}

// EmitRoot wraps tree in the implicit whole-match capture (index 0),
// lowers it, appends accept, and assembles the finished Program.
func (g *Generator) EmitRoot(tree *pattern.Node, captures *pattern.CaptureList, initial program.Options) (*program.Program, error) {
	g.b = program.NewBuilder(captures)
	g.opts = program.NewOptionsStack(initial)
	g.initialOptions = initial
	g.seenMatchableAtom = false
	g.depth = 0

	root := pattern.NewCapture("", pattern.NoRef, tree, nil)
	if err := g.emitNode(root); err != nil {
		return nil, err
	}
	g.b.EmitAccept()

	return g.b.Assemble(g.initialOptions)
}

// markMatchable records that a matchable atom has now been lowered, so
// later changeMatchingOptions directives stop reaching initialOptions.
func (g *Generator) markMatchable() {
	g.seenMatchableAtom = true
}

// applyOptionChanges applies seq to initialOptions (only if no matchable
// atom has been lowered yet) and unconditionally to the current scope.
func (g *Generator) applyOptionChanges(seq []pattern.OptionChange) {
	if !g.seenMatchableAtom {
		g.initialOptions.Apply(seq)
	}
	g.opts.Apply(seq)
}

func (g *Generator) emitNode(n *pattern.Node) error {
	if n == nil {
		return nil
	}
	g.depth++
	defer func() { g.depth-- }()
	if g.depth > g.config.MaxRecursionDepth {
		return &RecursionLimitError{Limit: g.config.MaxRecursionDepth}
	}

	switch n.Kind {
	case pattern.KindConcatenation:
		return g.emitConcatenation(n)
	case pattern.KindOrderedChoice:
		return g.emitOrderedChoice(n)
	case pattern.KindCapture:
		return g.emitCapture(n)
	case pattern.KindNonCapturingGroup:
		return g.emitGroup(n)
	case pattern.KindQuantification:
		return g.emitQuantification(n)
	case pattern.KindAtom:
		return g.emitAtom(n)
	case pattern.KindCustomCharacterClass:
		return g.emitCustomCharacterClass(n)
	case pattern.KindQuotedLiteral:
		return g.emitQuotedLiteral(n)
	case pattern.KindMatcher:
		_, err := g.emitMatcherNode(n)
		return err
	case pattern.KindTrivia, pattern.KindEmpty:
		return nil
	default:
		return &UnsupportedError{Feature: fmt.Sprintf("unknown node kind %v", n.Kind)}
	}
}

func (g *Generator) emitConcatenation(n *pattern.Node) error {
	for _, child := range n.Children {
		if err := g.emitNode(child); err != nil {
			return err
		}
	}
	return nil
}

// emitOrderedChoice lowers alternation per spec §4.4: each non-last
// branch is guarded by save(next) and ends with branch(done); the last
// branch runs unguarded and falls straight through to done.
func (g *Generator) emitOrderedChoice(n *pattern.Node) error {
	if len(n.Children) == 0 {
		return nil
	}
	done := g.b.MakeAddress()
	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			if err := g.emitNode(child); err != nil {
				return err
			}
			break
		}
		next := g.b.MakeAddress()
		g.b.EmitSave(next)
		if err := g.emitNode(child); err != nil {
			return err
		}
		g.b.EmitBranch(done)
		g.b.Label(next)
	}
	g.b.Label(done)
	return nil
}
