package compiler

import "github.com/coregx/rxcompile/pattern"

// emitQuotedLiteral lowers a QuotedLiteral per spec §4.4: an all-ASCII
// literal in grapheme mode with optimizations enabled becomes a run of
// matchScalar with the boundary check elided on every scalar but the
// last; anything else falls back to one match per character.
func (g *Generator) emitQuotedLiteral(n *pattern.Node) error {
	if n.Literal == "" {
		return nil
	}
	g.markMatchable()

	runes := []rune(n.Literal)
	opts := g.opts.Top()
	if !g.config.DisableOptimizations && opts.SemanticLevel == pattern.GraphemeCluster && isAllASCII(runes) {
		last := len(runes) - 1
		for i, r := range runes {
			g.b.EmitMatchScalar(r, false, i == last)
		}
		return nil
	}

	for _, r := range runes {
		g.b.EmitMatch(r, false)
	}
	return nil
}
