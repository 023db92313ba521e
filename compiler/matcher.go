package compiler

import (
	"github.com/coregx/rxcompile/pattern"
	"github.com/coregx/rxcompile/program"
)

// emitMatcherNode registers a Matcher's function, allocates a value
// register for its result, and emits matchBy (spec §4.4). The caller
// (typically emitCapture) decides what to do with the returned register.
func (g *Generator) emitMatcherNode(n *pattern.Node) (program.ValueReg, error) {
	g.markMatchable()
	return g.b.EmitMatchBy(n.MatcherFn), nil
}
