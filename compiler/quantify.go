package compiler

import (
	"github.com/coregx/rxcompile/opcode"
	"github.com/coregx/rxcompile/pattern"
	"github.com/coregx/rxcompile/program"
)

// emitQuantification lowers a Quantification per spec §4.4: early exits
// for no-op bounds, then either the fast-quantify super-instruction or
// the general counted-loop scaffold.
func (g *Generator) emitQuantification(n *pattern.Node) error {
	low, high := n.Low, n.High
	finite := high != pattern.Unbounded

	if high == 0 || (finite && low > high) {
		return nil
	}

	kind := n.QuantKind
	if kind == pattern.QuantDefaultFromOptions {
		kind = g.opts.Top().DefaultQuantificationKind
	}

	minTrips := low
	extraTrips := 0
	if finite {
		extraTrips = high - low
	}

	if g.canFastQuantify(kind, finite, minTrips, extraTrips) {
		if variant, bodyData, ok := g.fastQuantifyShape(n.Child); ok {
			g.markMatchable()
			packedExtra := extraTrips
			if !finite {
				packedExtra = opcode.InfiniteTrips
			}
			g.b.EmitQuantify(uint8(kind), minTrips, packedExtra, variant, bodyData)
			return nil
		}
	}

	return g.emitGeneralQuantify(n.Child, minTrips, extraTrips, finite, kind)
}

func (g *Generator) canFastQuantify(kind pattern.QuantifierKind, finite bool, minTrips, extraTrips int) bool {
	if g.config.DisableOptimizations {
		return false
	}
	if kind == pattern.QuantReluctant {
		return false
	}
	if g.opts.Top().SemanticLevel != pattern.GraphemeCluster {
		return false
	}
	if minTrips > opcode.MaxStorableTrips {
		return false
	}
	if finite && extraTrips > opcode.MaxStorableTrips {
		return false
	}
	return true
}

// unwrapForFastQuantify strips the single-child converted-literal and
// plain-non-capturing-group wrappers the fast-quantify shape check must
// see through (spec §4.4).
func unwrapForFastQuantify(n *pattern.Node) *pattern.Node {
	for {
		switch {
		case n.Kind == pattern.KindNonCapturingGroup && n.GroupKind == pattern.GroupPlain && n.Child != nil:
			n = n.Child
		case n.Kind == pattern.KindQuotedLiteral && len([]rune(n.Literal)) == 1:
			n = pattern.NewChar([]rune(n.Literal)[0])
		default:
			return n
		}
	}
}

// fastQuantifyShape reports whether child is one of the simple bodies the
// quantify super-instruction can specialize for, and the variant/bodyData
// pair to encode it with.
func (g *Generator) fastQuantifyShape(child *pattern.Node) (opcode.QuantifyBodyVariant, int, bool) {
	if child == nil {
		return 0, 0, false
	}
	n := unwrapForFastQuantify(child)

	switch n.Kind {
	case pattern.KindAtom:
		switch n.AtomKind {
		case pattern.AtomChar:
			if isASCII(n.Char) && !(g.opts.Top().CaseInsensitive && isCased(n.Char)) {
				return opcode.BodyASCIIChar, int(n.Char), true
			}
		case pattern.AtomAny:
			return opcode.BodyAny, 0, true
		case pattern.AtomAnyNonNewline:
			return opcode.BodyAnyNonNewline, 0, true
		case pattern.AtomDot:
			return opcode.BodyDot, 0, true
		case pattern.AtomCharacterClass:
			return opcode.BodyBuiltinClass, int(n.Builtin), true
		}
	case pattern.KindCustomCharacterClass:
		if _, ok := n.CCC.AsAnyAtom(); ok {
			return opcode.BodyDot, 0, true
		}
		if n.CCC.ASCIIBitsetConvertible() {
			reg := g.b.InternBitset(n.CCC.AsASCIIBitset())
			return opcode.BodyASCIIBitset, reg, true
		}
	}
	return 0, 0, false
}

// emitGeneralQuantify lowers the always-correct counted-loop scaffold
// from spec §4.4, used whenever fast-quantify specialization does not
// apply.
func (g *Generator) emitGeneralQuantify(child *pattern.Node, minTrips, extraTrips int, finite bool, kind pattern.QuantifierKind) error {
	var minReg program.IntReg
	if minTrips > 1 {
		minReg = g.b.AllocIntRegWithInitial(minTrips)
	}
	var extraReg program.IntReg
	if finite && extraTrips > 0 {
		extraReg = g.b.AllocIntRegWithInitial(extraTrips)
	}
	if kind == pattern.QuantPossessive {
		g.b.PushEmptySavePoint()
	}

	minTripsControl := g.b.MakeAddress()
	exitPolicy := g.b.MakeAddress()
	exit := g.b.MakeAddress()

	g.b.Label(minTripsControl)
	switch {
	case minTrips == 0:
		g.b.EmitBranch(exitPolicy)
	case minTrips == 1:
		// fallthrough into loopBody
	default:
		g.b.EmitCondBranchZeroElseDecrement(exitPolicy, minReg)
	}

	loopBody := g.b.MakeAddress()
	g.b.Label(loopBody)

	needsGuard := !finite && !pattern.GuaranteesForwardProgress(child)
	var startPos program.PosReg
	if needsGuard {
		startPos = g.b.AllocPosReg()
		g.b.EmitMoveCurrentPosition(startPos)
	}
	if err := g.emitNode(child); err != nil {
		return err
	}
	if needsGuard {
		g.b.EmitCondBranchSamePosition(exit, startPos)
	}
	if minTrips > 1 {
		g.b.EmitBranch(minTripsControl)
	}

	g.b.Label(exitPolicy)
	switch {
	case !finite:
		// infinite: fallthrough into the kind switch below
	case extraTrips == 0:
		g.b.EmitBranch(exit)
	default:
		g.b.EmitCondBranchZeroElseDecrement(exit, extraReg)
	}

	switch kind {
	case pattern.QuantPossessive:
		g.b.EmitClear()
		g.b.EmitSplitSaving(loopBody, exit)
	case pattern.QuantReluctant:
		g.b.EmitSave(loopBody)
	default: // eager
		g.b.EmitSplitSaving(loopBody, exit)
	}

	g.b.Label(exit)
	return nil
}
