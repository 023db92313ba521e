package literalhint

import (
	"github.com/coregx/rxcompile/pattern"
)

// ExtractorConfig bounds literal extraction the same way the teacher's
// literal.ExtractorConfig does (literal/extractor.go): a pattern with a
// wide alternation or a long quoted run must not make extraction blow up.
type ExtractorConfig struct {
	MaxLiterals   int
	MaxLiteralLen int
}

func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{MaxLiterals: 64, MaxLiteralLen: 64}
}

// ExtractPrefixes walks tree and returns the Seq of literals guaranteed
// (if Seq.IsExact()) or merely likely (otherwise) to prefix a match. A
// caller never executes this Seq itself; it is metadata a downstream VM
// may consult to skip positions that cannot possibly match.
func ExtractPrefixes(tree *pattern.Node, cfg ExtractorConfig) *Seq {
	seq := extract(tree, cfg)
	enforceMaxLiteralLen(seq, cfg.MaxLiteralLen)
	seq.Minimize(cfg.MaxLiterals)
	return seq
}

func extract(n *pattern.Node, cfg ExtractorConfig) *Seq {
	if n == nil {
		return emptySeq()
	}
	switch n.Kind {
	case pattern.KindQuotedLiteral:
		if n.Literal == "" {
			return emptySeq()
		}
		return NewSeq(NewLiteral([]byte(n.Literal), true))

	case pattern.KindAtom:
		switch n.AtomKind {
		case pattern.AtomChar:
			if n.Char >= 0x80 {
				return infeasibleSeq()
			}
			return NewSeq(NewLiteral([]byte(string(n.Char)), true))
		case pattern.AtomChangeMatchingOptions:
			return emptySeq()
		default:
			return infeasibleSeq()
		}

	case pattern.KindConcatenation:
		return extractConcatenation(n.Children, cfg)

	case pattern.KindOrderedChoice:
		return extractChoice(n.Children, cfg)

	case pattern.KindCapture:
		return extract(n.Child, cfg)

	case pattern.KindNonCapturingGroup:
		switch n.GroupKind {
		case pattern.GroupLookahead, pattern.GroupNegativeLookahead,
			pattern.GroupLookbehind, pattern.GroupNegativeLookbehind:
			// Zero-width: contributes no bytes, but doesn't block what
			// follows from still being a valid literal at this position.
			return emptySeq()
		default:
			return extract(n.Child, cfg)
		}

	case pattern.KindQuantification:
		return extractQuantification(n, cfg)

	case pattern.KindCustomCharacterClass:
		return extractCharClass(n.CCC)

	default: // Matcher, Trivia, Empty
		return infeasibleSeq()
	}
}

func extractConcatenation(children []*pattern.Node, cfg ExtractorConfig) *Seq {
	acc := emptySeq()
	for _, child := range children {
		piece := extract(child, cfg)
		if piece.IsEmpty() {
			if piece.exact {
				continue // exact but literal-free: nothing to append
			}
			acc.markInexact()
			for i := range acc.literals {
				acc.literals[i].Complete = false // now only a prefix
			}
			break // infeasible: keep what acc has so far, extend no further
		}
		acc = concat(acc, piece)
		if !piece.exact {
			acc.markInexact()
			break
		}
	}
	return acc
}

func extractChoice(children []*pattern.Node, cfg ExtractorConfig) *Seq {
	if len(children) == 0 {
		return infeasibleSeq()
	}
	branches := make([]*Seq, len(children))
	for i, child := range children {
		branches[i] = extract(child, cfg)
	}
	return union(branches...)
}

// extractQuantification handles only the mandatory-occurrence case
// precisely (Low==High==1 passes the child's own Seq through unchanged).
// Low==0 yields nothing (an infeasible Seq); any other bound with Low>=1
// under-approximates by taking at most one required
// occurrence and then refusing to extend further, since a true
// repeated-prefix encoding would need unbounded cross-product expansion.
func extractQuantification(n *pattern.Node, cfg ExtractorConfig) *Seq {
	if n.Low == 0 {
		return infeasibleSeq()
	}
	child := extract(n.Child, cfg)
	if n.Low == 1 && n.High == 1 {
		return child
	}
	child.markInexact()
	for i := range child.literals {
		child.literals[i].Complete = false
	}
	return child
}

// extractCharClass only extracts small, enumerable classes; large or
// inverted classes are left infeasible rather than expanded.
func extractCharClass(ccc pattern.CustomCharacterClass) *Seq {
	if ccc.Inverted || len(ccc.Ranges) > 0 || len(ccc.Members) == 0 || len(ccc.Members) > 8 {
		return infeasibleSeq()
	}
	lits := make([]Literal, len(ccc.Members))
	for i, m := range ccc.Members {
		lits[i] = NewLiteral([]byte(string(m)), true)
	}
	return NewSeq(lits...)
}

func enforceMaxLiteralLen(s *Seq, max int) {
	if s == nil {
		return
	}
	for i, l := range s.literals {
		if len(l.Bytes) > max {
			s.literals[i].Bytes = l.Bytes[:max]
			s.literals[i].Complete = false
			s.exact = false
		}
	}
}
