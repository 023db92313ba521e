package literalhint

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/rxcompile/pattern"
)

// automatonThreshold mirrors the teacher's UseAhoCorasick strategy pick
// (meta/compile.go): below it a handful of literals are cheap to compare
// directly, above it an automaton amortizes better.
const automatonThreshold = 8

// Hint is compile-time-only prefilter metadata attached to a Program.
// Nothing in this module scans a haystack with it; a downstream VM
// consults it (or not) to skip positions that provably cannot match.
type Hint struct {
	// RequiredPrefix is set when every literal in the extracted set
	// shares a common leading byte run.
	RequiredPrefix []byte

	// Literals holds the extracted alternative literals when there are
	// too few to be worth automaton construction.
	Literals [][]byte

	// Automaton matches any of Literals in one pass, built when the
	// extracted set is both exact and large enough to amortize the
	// construction cost.
	Automaton *ahocorasick.Automaton

	// AnchoredComplete is true when the whole pattern reduces to exactly
	// one of Literals with no remainder — a literal equality check
	// alone decides the match.
	AnchoredComplete bool
}

// Build extracts a literal prefilter hint from tree, or returns nil if no
// useful hint could be built. A nil Hint is not an error: many patterns
// (leading `.*`, a bare capture group, a matcher atom) yield nothing
// worth prefiltering on, and a VM must treat an absent hint as "scan
// normally".
func Build(tree *pattern.Node) (*Hint, error) {
	return BuildWithConfig(tree, DefaultExtractorConfig())
}

func BuildWithConfig(tree *pattern.Node, cfg ExtractorConfig) (*Hint, error) {
	seq := ExtractPrefixes(tree, cfg)
	if seq.IsEmpty() {
		return nil, nil
	}
	if seq.Len() == 1 && seq.Get(0).Len() == 0 {
		return nil, nil // the identity empty-literal: nothing to filter on
	}

	hint := &Hint{}
	if prefix := seq.LongestCommonPrefix(); len(prefix) > 0 {
		hint.RequiredPrefix = prefix
	}

	if seq.IsExact() && seq.Len() == 1 {
		hint.AnchoredComplete = seq.Get(0).Complete
	}

	if !seq.IsExact() || seq.Len() < automatonThreshold {
		hint.Literals = make([][]byte, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			hint.Literals[i] = seq.Get(i).Bytes
		}
		return hint, nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		// Fall back to the plain literal list rather than failing
		// compilation outright: the hint is an optimization, not a
		// correctness requirement.
		hint.Literals = make([][]byte, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			hint.Literals[i] = seq.Get(i).Bytes
		}
		return hint, nil
	}
	hint.Automaton = auto
	return hint, nil
}
