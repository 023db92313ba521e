package opcode

import "github.com/coregx/rxcompile/internal/conv"

// Field widths shared across payload layouts. Addresses get 28 bits
// (268M instructions, far beyond any real program); registers get 16
// bits (65536 per pool).
const (
	AddrBits = 28
	RegBits  = 16

	AddrMask = (uint64(1) << AddrBits) - 1
	RegMask  = (uint64(1) << RegBits) - 1
)

func packAddr(addr int) uint64 { return conv.IntToBits(addr, AddrBits) }
func unpackAddr(p uint64) int  { return int(p & AddrMask) }

func packReg(reg int) uint64 { return conv.IntToBits(reg, RegBits) }
func unpackReg(p uint64) int { return int(p & RegMask) }

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// --- single-address opcodes: branch, save, saveAddress, clearThrough ---

func PackAddrOnly(addr int) uint64      { return packAddr(addr) }
func UnpackAddrOnly(p uint64) (addr int) { return unpackAddr(p) }

// --- condBranchZeroElseDecrement(addr, intReg), condBranchSamePosition(addr, posReg) ---

func PackAddrReg(addr, reg int) uint64 {
	return packAddr(addr) | packReg(reg)<<AddrBits
}

func UnpackAddrReg(p uint64) (addr, reg int) {
	return unpackAddr(p), unpackReg(p >> AddrBits)
}

// --- splitSaving(to, saving) ---

func PackSplitSaving(to, saving int) uint64 {
	return packAddr(to) | packAddr(saving)<<AddrBits
}

func UnpackSplitSaving(p uint64) (to, saving int) {
	return unpackAddr(p), unpackAddr(p >> AddrBits)
}

// --- moveCurrentPosition(posReg), beginCapture(capReg), endCapture(capReg),
//     backreference(capReg), consumeBy(fnReg) ---

func PackReg(reg int) uint64      { return packReg(reg) }
func UnpackReg(p uint64) (reg int) { return unpackReg(p) }

// --- advance(n) ---

func PackAdvance(n int) uint64       { return conv.IntToBits(n, 32) }
func UnpackAdvance(p uint64) (n int) { return int(p & ((1 << 32) - 1)) }

// --- match(elementReg, caseInsensitive) ---

func PackMatch(elementReg int, caseInsensitive bool) uint64 {
	return packReg(elementReg) | boolBit(caseInsensitive)<<RegBits
}

func UnpackMatch(p uint64) (elementReg int, caseInsensitive bool) {
	return unpackReg(p), (p>>RegBits)&1 != 0
}

// --- matchScalar(scalar, caseInsensitive, boundaryCheck) ---

const scalarBits = 21 // Unicode scalar values fit in 21 bits (<= 0x10FFFF)

func PackMatchScalar(scalar rune, caseInsensitive, boundaryCheck bool) uint64 {
	p := conv.IntToBits(int(scalar), scalarBits)
	p |= boolBit(caseInsensitive) << scalarBits
	p |= boolBit(boundaryCheck) << (scalarBits + 1)
	return p
}

func UnpackMatchScalar(p uint64) (scalar rune, caseInsensitive, boundaryCheck bool) {
	scalar = rune(p & ((1 << scalarBits) - 1))
	caseInsensitive = (p>>scalarBits)&1 != 0
	boundaryCheck = (p>>(scalarBits+1))&1 != 0
	return
}

// --- matchBitset(bitsetReg, isScalar) ---

func PackMatchBitset(bitsetReg int, isScalar bool) uint64 {
	return packReg(bitsetReg) | boolBit(isScalar)<<RegBits
}

func UnpackMatchBitset(p uint64) (bitsetReg int, isScalar bool) {
	return unpackReg(p), (p>>RegBits)&1 != 0
}

// --- matchBuiltin(class, strictAscii, isScalar) ---

func PackMatchBuiltin(class uint8, strictAscii, isScalar bool) uint64 {
	p := uint64(class)
	p |= boolBit(strictAscii) << 8
	p |= boolBit(isScalar) << 9
	return p
}

func UnpackMatchBuiltin(p uint64) (class uint8, strictAscii, isScalar bool) {
	class = uint8(p & 0xFF)
	strictAscii = (p>>8)&1 != 0
	isScalar = (p>>9)&1 != 0
	return
}

// --- assertBy(assertionPayload) ---

func PackAssert(kind uint8, anchorsMatchNewlines, simpleUnicodeBoundaries, asciiWord, isScalar bool, oracleReg int) uint64 {
	p := uint64(kind)
	p |= boolBit(anchorsMatchNewlines) << 8
	p |= boolBit(simpleUnicodeBoundaries) << 9
	p |= boolBit(asciiWord) << 10
	p |= boolBit(isScalar) << 11
	p |= packReg(oracleReg) << 12
	return p
}

func UnpackAssert(p uint64) (kind uint8, anchorsMatchNewlines, simpleUnicodeBoundaries, asciiWord, isScalar bool, oracleReg int) {
	kind = uint8(p & 0xFF)
	anchorsMatchNewlines = (p>>8)&1 != 0
	simpleUnicodeBoundaries = (p>>9)&1 != 0
	asciiWord = (p>>10)&1 != 0
	isScalar = (p>>11)&1 != 0
	oracleReg = unpackReg(p >> 12)
	return
}

// --- matchBy(matcherReg, valueReg) ---

func PackMatchBy(matcherReg, valueReg int) uint64 {
	return packReg(matcherReg) | packReg(valueReg)<<RegBits
}

func UnpackMatchBy(p uint64) (matcherReg, valueReg int) {
	return unpackReg(p), unpackReg(p >> RegBits)
}

// --- captureValue(valueReg, capReg) ---

func PackCaptureValue(valueReg, capReg int) uint64 {
	return packReg(valueReg) | packReg(capReg)<<RegBits
}

func UnpackCaptureValue(p uint64) (valueReg, capReg int) {
	return unpackReg(p), unpackReg(p >> RegBits)
}

// --- transformCapture(capReg, transformReg) ---

func PackTransformCapture(capReg, transformReg int) uint64 {
	return packReg(capReg) | packReg(transformReg)<<RegBits
}

func UnpackTransformCapture(p uint64) (capReg, transformReg int) {
	return unpackReg(p), unpackReg(p >> RegBits)
}

// --- quantify(quantifyPayload) ---

const (
	quantKindBits  = 2
	quantTripsBits = 12
	quantBodyBits  = 4

	quantKindShift  = 0
	quantMinShift   = quantKindBits
	quantExtraShift = quantMinShift + quantTripsBits
	quantBodyShift  = quantExtraShift + quantTripsBits
	quantDataShift  = quantBodyShift + quantBodyBits
)

// MaxStorableTrips is the largest finite trip count the quantify
// super-instruction can encode (spec §4.4's MAX_STORABLE_TRIPS gate).
const MaxStorableTrips = (1 << quantTripsBits) - 2

// InfiniteTrips is the sentinel extraTrips value meaning "unbounded".
const InfiniteTrips = (1 << quantTripsBits) - 1

// QuantifyBodyVariant tags which simple body the quantify
// super-instruction was specialized for.
type QuantifyBodyVariant uint8

const (
	BodyASCIIChar QuantifyBodyVariant = iota
	BodyASCIIBitset
	BodyAny
	BodyAnyNonNewline
	BodyDot
	BodyBuiltinClass
)

// PackQuantify packs the quantify super-instruction payload. extraTrips
// must be InfiniteTrips or <= MaxStorableTrips. bodyData is variant
// specific: an ASCII byte for BodyASCIIChar, a bitset register for
// BodyASCIIBitset, the BuiltinClass value for BodyBuiltinClass, unused
// otherwise.
func PackQuantify(kind uint8, minTrips, extraTrips int, variant QuantifyBodyVariant, bodyData int) uint64 {
	p := conv.IntToBits(int(kind), quantKindBits) << quantKindShift
	p |= conv.IntToBits(minTrips, quantTripsBits) << quantMinShift
	p |= conv.IntToBits(extraTrips, quantTripsBits) << quantExtraShift
	p |= conv.IntToBits(int(variant), quantBodyBits) << quantBodyShift
	p |= conv.IntToBits(bodyData, payloadBits-quantDataShift) << quantDataShift
	return p
}

func UnpackQuantify(p uint64) (kind uint8, minTrips, extraTrips int, variant QuantifyBodyVariant, bodyData int) {
	kind = uint8((p >> quantKindShift) & ((1 << quantKindBits) - 1))
	minTrips = int((p >> quantMinShift) & ((1 << quantTripsBits) - 1))
	extraTrips = int((p >> quantExtraShift) & ((1 << quantTripsBits) - 1))
	variant = QuantifyBodyVariant((p >> quantBodyShift) & ((1 << quantBodyBits) - 1))
	bodyData = int((p >> quantDataShift) & ((1 << (payloadBits - quantDataShift)) - 1))
	return
}
