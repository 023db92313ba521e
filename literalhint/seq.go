// Package literalhint builds optional, compile-time-only literal-prefilter
// metadata from a pattern tree, attached to a Program as PrefilterHint. It
// never scans a haystack itself: execution is a downstream VM's job. The
// Seq/Literal types and their minimization are adapted from the teacher's
// literal package (literal/seq.go); the tree walk that produces them is new,
// since this module's input is a pattern.Node rather than regexp/syntax.
package literalhint

import (
	"bytes"
	"sort"
)

// Literal is a concrete byte sequence that may appear in a match. Complete
// reports whether matching it alone proves a match (the whole pattern is
// this literal), as opposed to merely being a required prefix.
type Literal struct {
	Bytes    []byte
	Complete bool
}

func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

func (l Literal) Len() int { return len(l.Bytes) }

// Seq is a set of alternative literals extracted from a pattern, e.g. the
// two branches of `foo|bar`. A nil/empty Seq means no useful literal could
// be extracted. Exact tracks whether every literal in the set is a
// complete, exhaustive enumeration of what could appear there; once any
// contributing branch can't be reduced to literals, Exact goes false and
// the Seq is only useful as a prefilter, never as a proof of match.
type Seq struct {
	literals []Literal
	exact    bool
}

// NewSeq builds an exact Seq from explicit literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: append([]Literal(nil), lits...), exact: true}
}

// emptySeq is the identity for concatenation: a single zero-length exact
// literal, analogous to the empty-string match.
func emptySeq() *Seq {
	return &Seq{literals: []Literal{{Bytes: nil, Complete: true}}, exact: true}
}

// infeasibleSeq marks "no literal could be extracted here at all".
func infeasibleSeq() *Seq {
	return &Seq{exact: false}
}

func (s *Seq) Len() int { return len(s.literals) }

func (s *Seq) Get(i int) Literal { return s.literals[i] }

func (s *Seq) IsEmpty() bool { return s == nil || len(s.literals) == 0 }

// IsExact reports whether every literal in the set is known-complete and
// the set is an exhaustive enumeration (no branch was abandoned).
func (s *Seq) IsExact() bool { return s != nil && s.exact }

func (s *Seq) markInexact() { s.exact = false }

// clone returns a defensive deep copy of s. Nothing in this package calls
// it: Minimize mutates s in place, and concat builds a fresh Seq.
func (s *Seq) clone() *Seq {
	if s == nil {
		return nil
	}
	out := &Seq{literals: append([]Literal(nil), s.literals...), exact: s.exact}
	for i, l := range out.literals {
		out.literals[i].Bytes = append([]byte(nil), l.Bytes...)
	}
	return out
}

// concat appends other onto the end of every literal in s (cross product),
// used while walking a Concatenation left to right.
func concat(s, other *Seq) *Seq {
	if s.IsEmpty() || other.IsEmpty() {
		return infeasibleSeq()
	}
	out := &Seq{exact: s.exact && other.exact}
	for _, a := range s.literals {
		for _, b := range other.literals {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			out.literals = append(out.literals, Literal{Bytes: joined, Complete: a.Complete && b.Complete})
		}
	}
	return out
}

// union merges the Seqs of any number of alternative branches, used while
// walking an OrderedChoice.
func union(seqs ...*Seq) *Seq {
	out := &Seq{exact: true}
	for _, s := range seqs {
		if s == nil || !s.exact {
			out.exact = false
		}
		if s != nil {
			out.literals = append(out.literals, s.literals...)
		}
	}
	return out
}

// Minimize sorts and deduplicates the literal set, truncating (and marking
// inexact) when it grows past maxLiterals — the teacher's bound against
// unbounded growth from large alternations (literal/seq.go).
func (s *Seq) Minimize(maxLiterals int) {
	if s == nil {
		return
	}
	sort.Slice(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	deduped := s.literals[:0]
	for i, l := range s.literals {
		if i == 0 || !bytes.Equal(l.Bytes, s.literals[i-1].Bytes) {
			deduped = append(deduped, l)
		}
	}
	s.literals = deduped
	if len(s.literals) > maxLiterals {
		s.literals = s.literals[:maxLiterals]
		s.exact = false
	}
}

// LongestCommonPrefix returns the byte prefix shared by every literal in
// the set, or nil if the set is empty or has no common prefix.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := append([]byte(nil), s.literals[0].Bytes...)
	for _, l := range s.literals[1:] {
		prefix = commonPrefix(prefix, l.Bytes)
		if len(prefix) == 0 {
			return nil
		}
	}
	return prefix
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
