package pattern

// ClassRange is an inclusive rune range, e.g. 'a'-'z'.
type ClassRange struct {
	Lo, Hi rune
}

// CustomCharacterClass is a parser-level character class: a set of ranges
// and individual members, optionally inverted. "any" written as a class
// member with Inverted=false is handled specially (see AsAnyAtom).
type CustomCharacterClass struct {
	Ranges   []ClassRange
	Members  []rune
	Inverted bool

	// IsAnyMember is set when the class's only member is the special
	// "any" token (e.g. a parser represented `.`-as-class this way); see
	// the §4.4 rule "a character class whose only member is `.`/"any"
	// with inverted=false lowers to a plain emitDot".
	IsAnyMember bool
}

// AsAnyAtom reports whether this class should lower as a plain dot atom
// per the §4.4 special case, returning the equivalent Atom node kind.
func (c CustomCharacterClass) AsAnyAtom() (AtomKind, bool) {
	if c.IsAnyMember && !c.Inverted && len(c.Ranges) == 0 && len(c.Members) == 0 {
		return AtomDot, true
	}
	return 0, false
}

// ASCIIBitset is a 256-entry membership table for a character class
// restricted to the ASCII byte range. It is the bytecode-facing form a
// CustomCharacterClass takes when ASCIIBitsetConvertible, and is built the
// same way the teacher's CharClassSearcher builds its membership table
// (nfa/charclass_searcher.go): one pass over each range, flipping bits.
type ASCIIBitset struct {
	bits [256]bool
}

func (b *ASCIIBitset) Set(lo, hi byte) {
	for i := int(lo); i <= int(hi); i++ {
		b.bits[i] = true
	}
}

func (b *ASCIIBitset) Test(c byte) bool { return b.bits[c] }

// ASCIIBitsetConvertible reports whether every range and member of this
// class (after accounting for inversion) falls within the ASCII byte
// range 0x00-0x7F, which is required before the code generator may emit
// matchBitset/fast-quantify's ascii-bitset body variant instead of a
// general consumeBy closure.
func (c CustomCharacterClass) ASCIIBitsetConvertible() bool {
	if c.Inverted {
		return false // an inverted class also matches every non-ASCII scalar
	}
	for _, r := range c.Ranges {
		if r.Lo > 0x7F || r.Hi > 0x7F {
			return false
		}
	}
	for _, m := range c.Members {
		if m > 0x7F {
			return false
		}
	}
	return true
}

// AsASCIIBitset converts an ASCII-bitset-convertible class into its
// 256-entry membership table, honoring Inverted.
func (c CustomCharacterClass) AsASCIIBitset() *ASCIIBitset {
	bs := &ASCIIBitset{}
	for _, r := range c.Ranges {
		bs.Set(byte(r.Lo), byte(r.Hi))
	}
	for _, m := range c.Members {
		bs.Set(byte(m), byte(m))
	}
	if c.Inverted {
		for i := range bs.bits {
			bs.bits[i] = !bs.bits[i]
		}
	}
	return bs
}

// Contains reports whether r is a member of the class (post-inversion),
// used by the general consumeBy closure the generator builds for classes
// that are not ASCII-bitset-convertible.
func (c CustomCharacterClass) Contains(r rune) bool {
	in := false
	for _, rg := range c.Ranges {
		if r >= rg.Lo && r <= rg.Hi {
			in = true
			break
		}
	}
	if !in {
		for _, m := range c.Members {
			if r == m {
				in = true
				break
			}
		}
	}
	if c.Inverted {
		return !in
	}
	return in
}
