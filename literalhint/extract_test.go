package literalhint

import (
	"bytes"
	"testing"

	"github.com/coregx/rxcompile/pattern"
)

func bytesOf(s *Seq) [][]byte {
	out := make([][]byte, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = s.Get(i).Bytes
	}
	return out
}

func TestExtractQuotedLiteral(t *testing.T) {
	seq := ExtractPrefixes(pattern.NewConcatenation(pattern.NewQuotedLiteral("hello")), DefaultExtractorConfig())
	if !seq.IsExact() || seq.Len() != 1 {
		t.Fatalf("seq = %+v, want one exact literal", seq)
	}
	if !bytes.Equal(seq.Get(0).Bytes, []byte("hello")) || !seq.Get(0).Complete {
		t.Fatalf("literal = %q complete=%v, want \"hello\" complete=true", seq.Get(0).Bytes, seq.Get(0).Complete)
	}
}

func TestExtractConcatenationOfChars(t *testing.T) {
	tree := pattern.NewConcatenation(pattern.NewChar('f'), pattern.NewChar('o'), pattern.NewChar('o'))
	seq := ExtractPrefixes(tree, DefaultExtractorConfig())
	if !seq.IsExact() || seq.Len() != 1 || !bytes.Equal(seq.Get(0).Bytes, []byte("foo")) {
		t.Fatalf("seq = %+v, want exact \"foo\"", seq)
	}
}

func TestExtractAlternationUnion(t *testing.T) {
	tree := pattern.NewOrderedChoice(pattern.NewQuotedLiteral("foo"), pattern.NewQuotedLiteral("bar"))
	seq := ExtractPrefixes(tree, DefaultExtractorConfig())
	if !seq.IsExact() || seq.Len() != 2 {
		t.Fatalf("seq = %+v, want two exact literals", seq)
	}
	got := bytesOf(seq)
	if !((bytes.Equal(got[0], []byte("bar")) && bytes.Equal(got[1], []byte("foo"))) ||
		(bytes.Equal(got[0], []byte("foo")) && bytes.Equal(got[1], []byte("bar")))) {
		t.Fatalf("literals = %q, want {foo, bar}", got)
	}
}

func TestExtractTrailingMatcherTruncates(t *testing.T) {
	tree := pattern.NewConcatenation(pattern.NewQuotedLiteral("go"), pattern.NewMatcher(nil))
	seq := ExtractPrefixes(tree, DefaultExtractorConfig())
	if seq.IsExact() {
		t.Fatal("expected inexact seq once a matcher node is hit")
	}
	if seq.Len() != 1 || !bytes.Equal(seq.Get(0).Bytes, []byte("go")) {
		t.Fatalf("seq = %+v, want prefix \"go\" retained", seq)
	}
}

func TestExtractOptionalQuantifierInfeasible(t *testing.T) {
	tree := pattern.NewQuantification(0, 1, pattern.QuantEager, pattern.NewChar('a'))
	seq := ExtractPrefixes(tree, DefaultExtractorConfig())
	if !seq.IsEmpty() {
		t.Fatalf("seq = %+v, want nothing extracted from an optional quantifier", seq)
	}
}

func TestExtractSmallCharClass(t *testing.T) {
	n := pattern.NewCustomCharacterClass(pattern.CustomCharacterClass{Members: []rune{'a', 'b'}})
	seq := ExtractPrefixes(n, DefaultExtractorConfig())
	if !seq.IsExact() || seq.Len() != 2 {
		t.Fatalf("seq = %+v, want two exact single-byte literals", seq)
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	tree := pattern.NewOrderedChoice(pattern.NewQuotedLiteral("foobar"), pattern.NewQuotedLiteral("foobaz"))
	seq := ExtractPrefixes(tree, DefaultExtractorConfig())
	if got := seq.LongestCommonPrefix(); !bytes.Equal(got, []byte("fooba")) {
		t.Fatalf("LongestCommonPrefix = %q, want %q", got, "fooba")
	}
}
