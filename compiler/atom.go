package compiler

import (
	"fmt"
	"unicode"

	"github.com/coregx/rxcompile/pattern"
	"github.com/coregx/rxcompile/program"
)

func isASCII(r rune) bool { return r < 0x80 }

func isAllASCII(rs []rune) bool {
	for _, r := range rs {
		if !isASCII(r) {
			return false
		}
	}
	return true
}

// isCased reports whether r has a case distinction at all, i.e. whether
// case-insensitive matching could possibly behave differently from
// case-sensitive matching for it.
func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func (g *Generator) emitAtom(n *pattern.Node) error {
	if n.IsMatchableAtom() {
		g.markMatchable()
	}
	switch n.AtomKind {
	case pattern.AtomChar:
		return g.emitChar(n.Char)
	case pattern.AtomScalar:
		return g.emitScalar(n.Scalar)
	case pattern.AtomAny:
		g.emitAny()
		return nil
	case pattern.AtomAnyNonNewline:
		g.emitAnyNonNewline()
		return nil
	case pattern.AtomDot:
		return g.emitDot()
	case pattern.AtomCharacterClass:
		return g.emitBuiltinClass(n)
	case pattern.AtomAssertion:
		return g.emitAssertion(n)
	case pattern.AtomBackreference:
		return g.emitBackreference(n)
	case pattern.AtomSymbolicReference:
		g.b.BuildUnresolvedReference(n.SymbolicID)
		return nil
	case pattern.AtomChangeMatchingOptions:
		g.applyOptionChanges(n.OptionSeq)
		return nil
	case pattern.AtomUnconverted:
		return &UnsupportedError{Feature: "unconverted node: " + n.Custom}
	default:
		return &UnsupportedError{Feature: fmt.Sprintf("unknown atom kind %v", n.AtomKind)}
	}
}

// emitChar lowers char(c) per spec §4.4's four-way decision: scalar
// semantics first, then case-insensitive-and-cased, then the ASCII fast
// path, then the fully general match.
func (g *Generator) emitChar(c rune) error {
	opts := g.opts.Top()
	if opts.SemanticLevel == pattern.UnicodeScalar {
		g.b.EmitMatchScalar(c, false, true)
		return nil
	}
	if opts.CaseInsensitive && isCased(c) {
		if !g.config.DisableOptimizations && isASCII(c) {
			g.b.EmitMatchScalar(c, true, true)
		} else {
			g.b.EmitMatch(c, true)
		}
		return nil
	}
	if !g.config.DisableOptimizations && isASCII(c) {
		g.b.EmitMatchScalar(c, false, true)
		return nil
	}
	g.b.EmitMatch(c, false)
	return nil
}

// emitScalar lowers scalar(s): grapheme mode treats it as the equivalent
// char; scalar mode emits matchScalar directly with a case-insensitive
// variant iff the option is set and s is cased.
func (g *Generator) emitScalar(s rune) error {
	if g.opts.Top().SemanticLevel == pattern.GraphemeCluster {
		return g.emitChar(s)
	}
	ci := g.opts.Top().CaseInsensitive && isCased(s)
	g.b.EmitMatchScalar(s, ci, true)
	return nil
}

func (g *Generator) emitAny() {
	if g.opts.Top().SemanticLevel == pattern.GraphemeCluster {
		g.b.EmitAdvance(1)
		return
	}
	g.b.EmitConsumeBy(scalarConsume)
}

func (g *Generator) emitAnyNonNewline() {
	g.b.EmitConsumeBy(nonNewlineConsume)
}

// emitDot is `any` when dotMatchesNewline, else `anyNonNewline`.
func (g *Generator) emitDot() error {
	if g.opts.Top().DotMatchesNewline {
		g.emitAny()
	} else {
		g.emitAnyNonNewline()
	}
	return nil
}

func isWordClass(b pattern.BuiltinClass) bool {
	return b == pattern.ClassWord || b == pattern.ClassNotWord
}

func (g *Generator) emitBuiltinClass(n *pattern.Node) error {
	opts := g.opts.Top()
	isScalar := opts.SemanticLevel == pattern.UnicodeScalar
	strictAscii := opts.UsesASCIIWord && isWordClass(n.Builtin)
	g.b.EmitMatchBuiltin(n.Builtin, strictAscii, isScalar)
	return nil
}

// emitAssertion lowers assertion(kind) per spec §4.4. resetStartOfMatch
// is explicitly unsupported; every other kind emits assertBy carrying the
// kind plus a snapshot of the option bits the VM's oracle needs.
// firstMatchingPositionInSubject's "always fails absent search-bound
// context" behavior is the VM oracle's concern, not this lowering's.
func (g *Generator) emitAssertion(n *pattern.Node) error {
	if n.Assertion == pattern.AssertResetStartOfMatch {
		return &UnsupportedError{Feature: "resetStartOfMatch"}
	}
	g.b.EmitAssertBy(n.Assertion, g.opts.Top(), nil)
	return nil
}

func (g *Generator) emitBackreference(n *pattern.Node) error {
	ref := n.Backref
	switch ref.Kind {
	case pattern.BackrefRecursesWholePattern:
		return &UnsupportedError{Feature: "recursesWholePattern backreference"}
	case pattern.BackrefRelative:
		return &UnsupportedError{Feature: "relative backreference"}
	case pattern.BackrefAbsolute:
		g.b.EmitBackreference(program.CapReg(ref.Index))
		return nil
	case pattern.BackrefNamed:
		idx, ok := g.b.Captures().IndexForName(ref.Name)
		if !ok {
			return &program.UncapturedReferenceError{Name: ref.Name}
		}
		g.b.EmitBackreference(program.CapReg(idx))
		return nil
	default:
		return &UnsupportedError{Feature: fmt.Sprintf("unknown backreference kind %v", ref.Kind)}
	}
}
