package mfm

import "testing"

func TestFluxFromBitcellsEmitsOnSetBits(t *testing.T) {
	// 0x81 LSB-first is bits 1,0,0,0,0,0,0,1 -> set bits at positions 0 and 7.
	intervals, carry := FluxFromBitcells([]byte{0x81}, 160, 0)
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %v", len(intervals), intervals)
	}
	if intervals[0] != 10 { // 160/16 = 10
		t.Errorf("first interval = %d, want 10", intervals[0])
	}
	if carry != 0 {
		t.Errorf("carry = %d, want 0 after a set bit", carry)
	}
}

func TestFluxFromBitcellsCarriesRemainder(t *testing.T) {
	_, carry := FluxFromBitcells([]byte{0x00}, 17, 0)
	// 8 zero bits each advancing 17/16 ticks accumulate 136 sixteenths,
	// none consumed since no bit was set.
	if carry != 136 {
		t.Errorf("carry = %d, want 136", carry)
	}
}

func TestFluxFromMSBBitcellsEmitsOnSetBits(t *testing.T) {
	// 0x81 MSB-first is bits 1,0,0,0,0,0,0,1 -> set bits at positions 0 and 7 (scanned high-to-low).
	intervals, carry := FluxFromMSBBitcells([]byte{0x81}, 160, 0)
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %v", len(intervals), intervals)
	}
	if intervals[0] != 10 {
		t.Errorf("first interval = %d, want 10", intervals[0])
	}
	if carry != 0 {
		t.Errorf("carry = %d, want 0 after a set bit", carry)
	}
}

func TestTicksPerCellSixteenths(t *testing.T) {
	got := TicksPerCellSixteenths(250) // 250 kbit/s, standard DD rate
	if got == 0 {
		t.Fatalf("TicksPerCellSixteenths(250) = 0")
	}
}
