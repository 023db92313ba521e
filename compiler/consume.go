package compiler

import (
	"unicode/utf8"

	"github.com/coregx/rxcompile/pattern"
)

// scalarConsume steps over exactly one Unicode scalar, used for `any` in
// scalar-semantics mode.
func scalarConsume(input string, pos int) (int, bool) {
	if pos >= len(input) {
		return pos, false
	}
	_, size := utf8.DecodeRuneInString(input[pos:])
	return pos + size, true
}

// nonNewlineConsume is scalarConsume that refuses to step over a newline,
// used for `anyNonNewline`/`dot` when dotMatchesNewline is off.
func nonNewlineConsume(input string, pos int) (int, bool) {
	if pos >= len(input) {
		return pos, false
	}
	r, size := utf8.DecodeRuneInString(input[pos:])
	if r == '\n' {
		return pos, false
	}
	return pos + size, true
}

// classConsumeFunc builds the consumeBy closure for a CustomCharacterClass
// that is not ASCII-bitset-convertible.
func classConsumeFunc(ccc pattern.CustomCharacterClass) pattern.ConsumeFunc {
	return func(input string, pos int) (int, bool) {
		if pos >= len(input) {
			return pos, false
		}
		r, size := utf8.DecodeRuneInString(input[pos:])
		if !ccc.Contains(r) {
			return pos, false
		}
		return pos + size, true
	}
}
