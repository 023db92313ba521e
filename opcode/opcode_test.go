package opcode

import "testing"

// allOpcodes enumerates every opcode the encoding scheme must round-trip.
func allOpcodes() []Opcode {
	return []Opcode{
		OpBranch, OpCondBranchZeroElseDecrement, OpCondBranchSamePosition,
		OpNop, OpAccept, OpFail,
		OpSave, OpSaveAddress, OpClear, OpClearThrough, OpSplitSaving,
		OpMoveCurrentPosition, OpAdvance,
		OpMatch, OpMatchScalar, OpMatchBitset, OpMatchBuiltin, OpConsumeBy,
		OpAssertBy, OpMatchBy,
		OpBeginCapture, OpEndCapture, OpCaptureValue, OpTransformCapture, OpBackreference,
		OpQuantify,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, op := range allOpcodes() {
		got := Decode(Encode(op))
		if got != op {
			t.Errorf("Decode(Encode(%v)) = %v, want %v", op, got, op)
		}
	}
}

func TestEncodeCategorization(t *testing.T) {
	matchOps := map[Opcode]bool{OpMatch: true, OpMatchScalar: true, OpMatchBitset: true, OpMatchBuiltin: true, OpConsumeBy: true}
	priorityOps := map[Opcode]bool{OpSplitSaving: true, OpBranch: true, OpQuantify: true, OpSave: true, OpBeginCapture: true, OpEndCapture: true}

	for _, op := range allOpcodes() {
		b := Encode(op)
		wantMatch := matchOps[op]
		wantPriority := priorityOps[op]
		if gotMatch := b&0x80 != 0; gotMatch != wantMatch {
			t.Errorf("%v: match-family bit = %v, want %v", op, gotMatch, wantMatch)
		}
		if !wantMatch {
			if gotPriority := b&0x40 != 0; gotPriority != wantPriority {
				t.Errorf("%v: priority-family bit = %v, want %v", op, gotPriority, wantPriority)
			}
		}
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		op      Opcode
		payload uint64
	}{
		{"branch", OpBranch, PackAddrOnly(12345)},
		{"condBranch", OpCondBranchZeroElseDecrement, PackAddrReg(10, 3)},
		{"splitSaving", OpSplitSaving, PackSplitSaving(1, 2)},
		{"match", OpMatch, PackMatch(7, true)},
		{"matchScalar", OpMatchScalar, PackMatchScalar(0x1F600, true, false)},
		{"quantify", OpQuantify, PackQuantify(1, 0, InfiniteTrips, BodyASCIIChar, 'a')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := Make(tt.op, tt.payload)
			if inst.Opcode() != tt.op {
				t.Errorf("Opcode() = %v, want %v", inst.Opcode(), tt.op)
			}
			if inst.Payload() != tt.payload {
				t.Errorf("Payload() = %d, want %d", inst.Payload(), tt.payload)
			}
		})
	}
}

func TestPackQuantifyRoundTrip(t *testing.T) {
	kind, minTrips, extraTrips, variant, data := UnpackQuantify(PackQuantify(2, 5, 100, BodyASCIIBitset, 42))
	if kind != 2 || minTrips != 5 || extraTrips != 100 || variant != BodyASCIIBitset || data != 42 {
		t.Fatalf("unexpected unpack: kind=%d min=%d extra=%d variant=%d data=%d", kind, minTrips, extraTrips, variant, data)
	}
}

func TestPackAssertRoundTrip(t *testing.T) {
	kind, anchorsNL, simple, asciiWord, isScalar, oracle := UnpackAssert(PackAssert(3, true, false, true, false, 99))
	if kind != 3 || !anchorsNL || simple || !asciiWord || isScalar || oracle != 99 {
		t.Fatalf("unexpected unpack: %d %v %v %v %v %d", kind, anchorsNL, simple, asciiWord, isScalar, oracle)
	}
}
