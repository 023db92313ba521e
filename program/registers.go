package program

// Distinct register types per spec §3's per-program pools: Integer,
// Boolean, Position, Value, Capture. Keeping them as distinct Go types
// (rather than all plain ints) prevents accidentally wiring, say, an
// IntReg into a slot expecting a PosReg.
type (
	IntReg   int
	BoolReg  int
	PosReg   int
	ValueReg int
	CapReg   int
)

// registerFile allocates registers from five independent monotonic
// counters. Allocation never reuses a previously-issued index (spec
// §4.2: "monotonic-counter, no reuse").
type registerFile struct {
	nextInt, nextBool, nextPos, nextValue, nextCapture int
}

func (r *registerFile) allocInt() IntReg {
	reg := IntReg(r.nextInt)
	r.nextInt++
	return reg
}

func (r *registerFile) allocBool() BoolReg {
	reg := BoolReg(r.nextBool)
	r.nextBool++
	return reg
}

func (r *registerFile) allocPos() PosReg {
	reg := PosReg(r.nextPos)
	r.nextPos++
	return reg
}

func (r *registerFile) allocValue() ValueReg {
	reg := ValueReg(r.nextValue)
	r.nextValue++
	return reg
}

// allocCapture allocates the next capture register. Capture registers are
// numbered identically to capture indices (left-to-right opening order,
// spec §3 invariant), so the whole-match capture is always register 0.
func (r *registerFile) allocCapture() CapReg {
	reg := CapReg(r.nextCapture)
	r.nextCapture++
	return reg
}

// counts snapshots the five pool sizes for the assembled Program.
type RegisterCounts struct {
	Int, Bool, Pos, Value, Capture int
}

func (r *registerFile) counts() RegisterCounts {
	return RegisterCounts{
		Int:     r.nextInt,
		Bool:    r.nextBool,
		Pos:     r.nextPos,
		Value:   r.nextValue,
		Capture: r.nextCapture,
	}
}
