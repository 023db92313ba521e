// Package rxcompile is the facade over this module's code generator: it
// turns an already-parsed pattern tree into an assembled bytecode Program
// for a backtracking matching engine. Parsing and program execution are
// the caller's responsibility; see package pattern for the tree shape,
// package program for the artifact, and package literalhint for the
// optional compile-time prefilter hint Compile attaches.
package rxcompile

import (
	"github.com/coregx/rxcompile/compiler"
	"github.com/coregx/rxcompile/literalhint"
	"github.com/coregx/rxcompile/pattern"
	"github.com/coregx/rxcompile/program"
)

// Compile lowers tree into an assembled Program using captures as the
// pre-built capture table and initial as the starting matching options.
// When a literal prefilter hint can be extracted from tree, it is
// attached to the returned Program as PrefilterHint; a failure to build
// one is never fatal to compilation.
func Compile(tree *pattern.Node, captures *pattern.CaptureList, initial program.Options, opts ...compiler.Option) (*program.Program, error) {
	gen := compiler.New(compiler.NewConfig(opts...))
	prog, err := gen.EmitRoot(tree, captures, initial)
	if err != nil {
		return nil, err
	}
	if hint, hintErr := literalhint.Build(tree); hintErr == nil && hint != nil {
		prog.PrefilterHint = hint
	}
	return prog, nil
}
