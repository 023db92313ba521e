package compiler

import "github.com/coregx/rxcompile/pattern"

// emitCustomCharacterClass lowers a CustomCharacterClass per spec §4.4:
// the "any as a class member" special case collapses to a plain dot,
// ASCII-bitset-convertible classes emit matchBitset, and everything else
// falls back to a consumeBy closure.
func (g *Generator) emitCustomCharacterClass(n *pattern.Node) error {
	g.markMatchable()

	if atomKind, ok := n.CCC.AsAnyAtom(); ok {
		return g.emitAtom(&pattern.Node{Kind: pattern.KindAtom, AtomKind: atomKind})
	}

	if !g.config.DisableOptimizations && n.CCC.ASCIIBitsetConvertible() {
		isScalar := g.opts.Top().SemanticLevel == pattern.UnicodeScalar
		g.b.EmitMatchBitset(n.CCC.AsASCIIBitset(), isScalar)
		return nil
	}

	g.b.EmitConsumeBy(classConsumeFunc(n.CCC))
	return nil
}
