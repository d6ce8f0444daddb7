package mfm

import "github.com/hxcfe/floppytrack/clock"

// FluxFromBitcells converts a raw bitcell stream into flux-transition
// intervals, the way hfe_rdata_flux walks read_bc (spec §4.6): bits are
// consumed least-significant-bit first, a `1` bit emits a flux interval
// of ticksPerCell*(bits-since-last-one) in 1/16-tick units, and any
// leftover sub-bitcell remainder carries into ticksSinceFlux for the
// next call instead of being dropped.
//
// Grounded on the teacher's mfm.GenerateFluxTransitions (accumulate a
// bit counter, emit an interval on every set bit), generalized from a
// fixed MSB-first nanosecond encoding to the engine's LSB-first,
// tick-quantized, carry-across-calls convention.
func FluxFromBitcells(bits []byte, ticksPerCell16 uint32, ticksSinceFlux uint32) (intervals []uint32, newTicksSinceFlux uint32) {
	sinceOne := ticksSinceFlux
	for _, b := range bits {
		for i := 0; i < 8; i++ {
			bit := (b >> uint(i)) & 1
			sinceOne += ticksPerCell16
			if bit == 1 {
				intervals = append(intervals, sinceOne/16)
				sinceOne = sinceOne % 16
			}
		}
	}
	return intervals, sinceOne
}

// FluxFromMSBBitcells is FluxFromBitcells for the IMG/MFM path's
// encoded byte stream, where WordWriter.Bytes() packs each 16-bit
// encoded word most-significant-bit first rather than HFE's
// least-significant-bit-first convention (spec §4.5 encoder vs §4.6
// hfe_rdata_flux; see mfm.WordWriter).
func FluxFromMSBBitcells(bits []byte, ticksPerCell16 uint32, ticksSinceFlux uint32) (intervals []uint32, newTicksSinceFlux uint32) {
	sinceOne := ticksSinceFlux
	for _, b := range bits {
		for i := 7; i >= 0; i-- {
			bit := (b >> uint(i)) & 1
			sinceOne += ticksPerCell16
			if bit == 1 {
				intervals = append(intervals, sinceOne/16)
				sinceOne = sinceOne % 16
			}
		}
	}
	return intervals, sinceOne
}

// TicksPerCellSixteenths derives the per-bitcell tick count (in 1/16
// tick units) from a data rate expressed in kbit/s, at the engine's
// fixed system clock (spec §5 "ticks_per_cell").
func TicksPerCellSixteenths(bitRateKbps uint32) uint32 {
	if bitRateKbps == 0 {
		return 0
	}
	cellsPerSecond := uint64(bitRateKbps) * 1000
	return uint32(uint64(clock.SysclkHz) * 16 / cellsPerSecond)
}
