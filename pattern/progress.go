package pattern

// GuaranteesForwardProgress is the structural predicate from spec §4.4 used
// by the quantification lowering to decide whether a position-equality
// guard against zero-width loops is needed. It is purely structural: it
// never executes the tree, only inspects its shape.
func GuaranteesForwardProgress(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindOrderedChoice:
		for _, c := range n.Children {
			if !GuaranteesForwardProgress(c) {
				return false
			}
		}
		return len(n.Children) > 0
	case KindConcatenation:
		for _, c := range n.Children {
			if GuaranteesForwardProgress(c) {
				return true
			}
		}
		return false
	case KindCapture:
		return GuaranteesForwardProgress(n.Child)
	case KindNonCapturingGroup:
		if isLookaround(n.GroupKind) {
			return false
		}
		return GuaranteesForwardProgress(n.Child)
	case KindAtom:
		switch n.AtomKind {
		case AtomChangeMatchingOptions, AtomAssertion:
			return false
		default:
			return true
		}
	case KindQuantification:
		return n.Low >= 1 && GuaranteesForwardProgress(n.Child)
	case KindQuotedLiteral:
		return len(n.Literal) > 0
	case KindMatcher, KindTrivia, KindEmpty:
		return false
	case KindCustomCharacterClass:
		return true
	default:
		return false
	}
}

func isLookaround(k GroupKind) bool {
	switch k {
	case GroupLookahead, GroupNegativeLookahead, GroupLookbehind, GroupNegativeLookbehind:
		return true
	default:
		return false
	}
}
