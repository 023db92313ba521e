package program

import (
	"github.com/coregx/rxcompile/opcode"
	"github.com/coregx/rxcompile/pattern"
)

// Token is a builder-local forward label: a dense index into a table of
// resolved-or-pending addresses (spec §4.2, §9 "Forward labels"). Tokens
// are invalid once the Builder that created them has been assembled.
type Token int

const unresolvedAddr = -1

type fixupField int

const (
	fieldLow fixupField = iota // low AddrBits of the payload
	fieldHigh                  // next AddrBits above the low field (splitSaving's second address)
)

type addrFixup struct {
	instrIndex int
	token      Token
	field      fixupField
}

type refFixup struct {
	instrIndex int
	id         int
}

// Builder is the low-level, single-use instruction emitter described in
// spec §4.2. One Builder belongs to exactly one code generator for the
// duration of a single compilation (spec §5): nothing here is safe to
// share across goroutines.
type Builder struct {
	instructions []opcode.Instruction
	tokenAddrs   []int

	fixups       []addrFixup
	unresolved   []refFixup
	captureRefs  map[int]int // symbolic ref id -> capture index, populated as Captures are emitted

	regs registerFile

	elements  *Interner[rune]
	sequences *Interner[string]
	strings   *Interner[string]

	consumeFns   FuncTable[pattern.ConsumeFunc]
	assertionFns FuncTable[AssertionOracle]
	transformFns FuncTable[pattern.TransformFunc]
	matcherFns   FuncTable[pattern.MatcherFunc]
	bitsets      []*pattern.ASCIIBitset

	emptySavePointToken Token
	hasEmptySavePoint   bool

	captures *pattern.CaptureList

	// intRegInitials records the compile-time reset value for an IntReg
	// used as a quantifier trip counter (spec §4.4's %min/%extra): the VM
	// seeds the register with this value the first time control reaches
	// the scaffold that owns it, then condBranchZeroElseDecrement counts
	// it down. Registers with no entry here are not counters.
	intRegInitials map[IntReg]int
}

// NewBuilder creates a builder targeting the given pre-built capture list
// (spec §6: the capture list is an upstream input, not something this
// package computes).
func NewBuilder(captures *pattern.CaptureList) *Builder {
	return &Builder{
		elements:       newInterner[rune](),
		sequences:      newInterner[string](),
		strings:        newInterner[string](),
		captureRefs:    make(map[int]int),
		captures:       captures,
		intRegInitials: make(map[IntReg]int),
	}
}

// --- labels / fixups ---

// MakeAddress allocates a new forward label.
func (b *Builder) MakeAddress() Token {
	b.tokenAddrs = append(b.tokenAddrs, unresolvedAddr)
	return Token(len(b.tokenAddrs) - 1)
}

// Label binds tok to the address of the next instruction to be emitted.
func (b *Builder) Label(tok Token) {
	b.tokenAddrs[tok] = len(b.instructions)
}

// Fixup records that the most recently emitted instruction's low address
// field must be patched with to's resolved address at Assemble time.
func (b *Builder) Fixup(to Token) {
	b.fixups = append(b.fixups, addrFixup{instrIndex: len(b.instructions) - 1, token: to, field: fieldLow})
}

// FixupPair patches both address fields of the most recently emitted
// instruction (splitSaving's `to` and `saving`).
func (b *Builder) FixupPair(to, saving Token) {
	idx := len(b.instructions) - 1
	b.fixups = append(b.fixups, addrFixup{instrIndex: idx, token: to, field: fieldLow})
	b.fixups = append(b.fixups, addrFixup{instrIndex: idx, token: saving, field: fieldHigh})
}

func (b *Builder) emit(op opcode.Opcode, payload uint64) int {
	idx := len(b.instructions)
	b.instructions = append(b.instructions, opcode.Make(op, payload))
	return idx
}

// Addr returns the address the next emitted instruction will occupy.
func (b *Builder) Addr() int { return len(b.instructions) }

// --- registers ---

func (b *Builder) AllocIntReg() IntReg { return b.regs.allocInt() }

// AllocIntRegWithInitial allocates a fresh int register and records the
// value the VM must reset it to before first use, for quantifier trip
// counters (spec §4.4).
func (b *Builder) AllocIntRegWithInitial(initial int) IntReg {
	reg := b.regs.allocInt()
	b.intRegInitials[reg] = initial
	return reg
}

func (b *Builder) AllocBoolReg() BoolReg   { return b.regs.allocBool() }
func (b *Builder) AllocPosReg() PosReg     { return b.regs.allocPos() }
func (b *Builder) AllocValueReg() ValueReg { return b.regs.allocValue() }

// AllocCaptureReg allocates the next capture register, left to right
// (spec §3 invariant: capture 0 is the implicit whole match, and callers
// must allocate it first).
func (b *Builder) AllocCaptureReg() CapReg { return b.regs.allocCapture() }

// --- capture-reference bookkeeping ---

// RecordCaptureRef associates a symbolic id with the capture index that
// was just allocated for it, so that symbolicReference instructions can be
// resolved by Assemble.
func (b *Builder) RecordCaptureRef(id int, capIndex int) {
	b.captureRefs[id] = capIndex
}

// Captures returns the capture list this builder was constructed with.
func (b *Builder) Captures() *pattern.CaptureList { return b.captures }

// --- interning ---

func (b *Builder) InternElement(r rune) int       { return b.elements.Intern(r) }
func (b *Builder) InternSequence(s string) int    { return b.sequences.Intern(s) }
func (b *Builder) InternString(s string) int      { return b.strings.Intern(s) }
func (b *Builder) InternConsumeFunc(fn pattern.ConsumeFunc) int {
	return b.consumeFns.Add(fn)
}
func (b *Builder) InternAssertionFunc(fn AssertionOracle) int {
	return b.assertionFns.Add(fn)
}
func (b *Builder) InternTransformFunc(fn pattern.TransformFunc) int {
	return b.transformFns.Add(fn)
}
func (b *Builder) InternMatcherFunc(fn pattern.MatcherFunc) int {
	return b.matcherFns.Add(fn)
}
func (b *Builder) InternBitset(bs *pattern.ASCIIBitset) int {
	idx := len(b.bitsets)
	b.bitsets = append(b.bitsets, bs)
	return idx
}

// --- one emit method per opcode (spec §4.2) ---

func (b *Builder) EmitBranch(to Token) {
	b.emit(opcode.OpBranch, opcode.PackAddrOnly(0))
	b.Fixup(to)
}

func (b *Builder) EmitCondBranchZeroElseDecrement(to Token, reg IntReg) {
	b.emit(opcode.OpCondBranchZeroElseDecrement, opcode.PackAddrReg(0, int(reg)))
	b.Fixup(to)
}

func (b *Builder) EmitCondBranchSamePosition(to Token, reg PosReg) {
	b.emit(opcode.OpCondBranchSamePosition, opcode.PackAddrReg(0, int(reg)))
	b.Fixup(to)
}

func (b *Builder) EmitNop()    { b.emit(opcode.OpNop, 0) }
func (b *Builder) EmitAccept() { b.emit(opcode.OpAccept, 0) }
func (b *Builder) EmitFail()   { b.emit(opcode.OpFail, 0) }

func (b *Builder) EmitSave(to Token) {
	b.emit(opcode.OpSave, opcode.PackAddrOnly(0))
	b.Fixup(to)
}

func (b *Builder) EmitSaveAddress(to Token) {
	b.emit(opcode.OpSaveAddress, opcode.PackAddrOnly(0))
	b.Fixup(to)
}

func (b *Builder) EmitClear() { b.emit(opcode.OpClear, 0) }

func (b *Builder) EmitClearThrough(to Token) {
	b.emit(opcode.OpClearThrough, opcode.PackAddrOnly(0))
	b.Fixup(to)
}

func (b *Builder) EmitSplitSaving(to, saving Token) {
	b.emit(opcode.OpSplitSaving, opcode.PackSplitSaving(0, 0))
	b.FixupPair(to, saving)
}

func (b *Builder) EmitMoveCurrentPosition(reg PosReg) {
	b.emit(opcode.OpMoveCurrentPosition, opcode.PackReg(int(reg)))
}

func (b *Builder) EmitAdvance(n int) {
	b.emit(opcode.OpAdvance, opcode.PackAdvance(n))
}

func (b *Builder) EmitMatch(element rune, caseInsensitive bool) {
	reg := b.InternElement(element)
	b.emit(opcode.OpMatch, opcode.PackMatch(reg, caseInsensitive))
}

func (b *Builder) EmitMatchScalar(scalar rune, caseInsensitive, boundaryCheck bool) {
	b.emit(opcode.OpMatchScalar, opcode.PackMatchScalar(scalar, caseInsensitive, boundaryCheck))
}

func (b *Builder) EmitMatchBitset(bs *pattern.ASCIIBitset, isScalar bool) {
	reg := b.InternBitset(bs)
	b.emit(opcode.OpMatchBitset, opcode.PackMatchBitset(reg, isScalar))
}

func (b *Builder) EmitMatchBuiltin(class pattern.BuiltinClass, strictAscii, isScalar bool) {
	b.emit(opcode.OpMatchBuiltin, opcode.PackMatchBuiltin(uint8(class), strictAscii, isScalar))
}

func (b *Builder) EmitConsumeBy(fn pattern.ConsumeFunc) {
	reg := b.InternConsumeFunc(fn)
	b.emit(opcode.OpConsumeBy, opcode.PackReg(reg))
}

// EmitAssertBy emits the assertion opcode, carrying kind plus a snapshot
// of the option bits relevant to it and a reference to an oracle function
// (possibly nil, e.g. for anchors that need no oracle).
func (b *Builder) EmitAssertBy(kind pattern.AssertionKind, opts Options, oracle AssertionOracle) {
	oracleReg := b.InternAssertionFunc(oracle)
	isScalar := opts.SemanticLevel == pattern.UnicodeScalar
	b.emit(opcode.OpAssertBy, opcode.PackAssert(
		uint8(kind), opts.AnchorsMatchNewlines, opts.UsesSimpleUnicodeBoundaries, opts.UsesASCIIWord, isScalar, oracleReg))
}

// EmitMatchBy interns fn, allocates a value register to receive its
// result, and returns that register so the caller (typically a Capture
// node) can reference it.
func (b *Builder) EmitMatchBy(fn pattern.MatcherFunc) ValueReg {
	matcherReg := b.InternMatcherFunc(fn)
	valueReg := b.AllocValueReg()
	b.emit(opcode.OpMatchBy, opcode.PackMatchBy(matcherReg, int(valueReg)))
	return valueReg
}

func (b *Builder) EmitBeginCapture(reg CapReg) {
	b.emit(opcode.OpBeginCapture, opcode.PackReg(int(reg)))
}

func (b *Builder) EmitEndCapture(reg CapReg) {
	b.emit(opcode.OpEndCapture, opcode.PackReg(int(reg)))
}

func (b *Builder) EmitCaptureValue(value ValueReg, cap CapReg) {
	b.emit(opcode.OpCaptureValue, opcode.PackCaptureValue(int(value), int(cap)))
}

func (b *Builder) EmitTransformCapture(cap CapReg, fn pattern.TransformFunc) {
	transformReg := b.InternTransformFunc(fn)
	b.emit(opcode.OpTransformCapture, opcode.PackTransformCapture(int(cap), transformReg))
}

func (b *Builder) EmitBackreference(cap CapReg) {
	b.emit(opcode.OpBackreference, opcode.PackReg(int(cap)))
}

// BuildUnresolvedReference emits a backreference instruction with a
// placeholder capture index and records (id -> instruction) so Assemble
// can patch it once every Capture node has been emitted (spec §4.2).
func (b *Builder) BuildUnresolvedReference(id int) {
	idx := b.emit(opcode.OpBackreference, opcode.PackReg(0))
	b.unresolved = append(b.unresolved, refFixup{instrIndex: idx, id: id})
}

func (b *Builder) EmitQuantify(kind uint8, minTrips, extraTrips int, variant opcode.QuantifyBodyVariant, bodyData int) {
	b.emit(opcode.OpQuantify, opcode.PackQuantify(kind, minTrips, extraTrips, variant, bodyData))
}

// PushEmptySavePoint emits a saveAddress pointing at a lazily-created
// terminal fail instruction, giving a possessive quantifier's exit policy
// a ratchet point to `clear` on every iteration (spec §4.2, §9).
func (b *Builder) PushEmptySavePoint() {
	if !b.hasEmptySavePoint {
		b.emptySavePointToken = b.MakeAddress()
		b.hasEmptySavePoint = true
	}
	b.EmitSaveAddress(b.emptySavePointToken)
}

// Assemble resolves all fixups, patches instruction payloads, emits the
// deferred fail sink if PushEmptySavePoint was ever called, and returns
// the immutable Program. Returns UncapturedReferenceError if any symbolic
// reference never resolved, and BuildError if any forward label
// was never bound (a compiler bug, not a user-facing condition).
func (b *Builder) Assemble(initial Options) (*Program, error) {
	if b.hasEmptySavePoint && b.tokenAddrs[b.emptySavePointToken] == unresolvedAddr {
		b.Label(b.emptySavePointToken)
		b.EmitFail()
	}

	for _, fx := range b.fixups {
		addr := b.tokenAddrs[fx.token]
		if addr == unresolvedAddr {
			return nil, &BuildError{Message: "unresolved forward label left at assemble time"}
		}
		inst := b.instructions[fx.instrIndex]
		payload := inst.Payload()
		switch fx.field {
		case fieldLow:
			payload = (payload &^ opcode.AddrMask) | (uint64(addr) & opcode.AddrMask)
		case fieldHigh:
			shifted := opcode.AddrMask << opcode.AddrBits
			payload = (payload &^ shifted) | ((uint64(addr) & opcode.AddrMask) << opcode.AddrBits)
		}
		b.instructions[fx.instrIndex] = opcode.Make(inst.Opcode(), payload)
	}

	for _, rf := range b.unresolved {
		capIndex, ok := b.captureRefs[rf.id]
		if !ok {
			return nil, &UncapturedReferenceError{ID: rf.id}
		}
		inst := b.instructions[rf.instrIndex]
		b.instructions[rf.instrIndex] = opcode.Make(inst.Opcode(), opcode.PackReg(capIndex))
	}

	return &Program{
		Instructions:             b.instructions,
		Elements:                 b.elements.Values(),
		Sequences:                b.sequences.Values(),
		Strings:                  b.strings.Values(),
		ConsumeFuncs:             b.consumeFns.Values(),
		AssertionFuncs:           b.assertionFns.Values(),
		TransformFuncs:           b.transformFns.Values(),
		MatcherFuncs:             b.matcherFns.Values(),
		Bitsets:                  b.bitsets,
		Registers:                b.regs.counts(),
		Captures:                 b.captures,
		ReferencedCaptureOffsets: b.captureRefs,
		InitialOptions:           initial,
		IntRegInitialValues:      b.intRegInitials,
	}, nil
}
