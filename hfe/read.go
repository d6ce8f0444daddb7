package hfe

import "github.com/hxcfe/floppytrack/mfm"

// Track is the per-track state produced by Engine.SeekTrack: one
// side's decoded bitcell bytes plus the bookkeeping needed to
// generate flux and detect index pulses (spec §3 "HFE block").
type Track struct {
	eng   *Engine
	index int // cyl*nr_sides + side
	side  int

	blockOff   uint16
	trkLen     int    // bytes of this side
	trackLenBC uint32 // bits of this side = trkLen*8
	batchSecs  int    // informational: batch_secs per spec's read-ahead rule

	bits             []byte // decoded bitcell bytes, LSB-first, opcodes stripped
	bitrateOps       []byte // per-byte SETBITRATE operand (0 = nominal rate)
	indexByteOffsets []int  // byte offsets at which an index opcode fired

	// Flux-generation cursor state, persisted across calls so a
	// revolution can be resumed mid-track (spec's cur_bc/cur_ticks).
	curBC          uint32
	curTicks16     uint64 // cumulative time in 1/16-tick units
	ticksSinceFlux uint32
	tracklenTicks  uint32

	indexPulses []uint32 // recorded cur_ticks (whole ticks) at each index opcode
	version     uint32
}

// Index returns the combined cyl*nr_sides+side track index.
func (t *Track) Index() int { return t.index }

// TrackLenBC returns the side's bitcell length (spec's tracklen_bc).
func (t *Track) TrackLenBC() uint32 { return t.trackLenBC }

// BatchSecs reports how many 512-byte blocks this track would read
// ahead per spec's threshold rule (2 if write_bc_ticks exceeds 1.5us,
// else 8); exposed for inspection by cmd/fdctl, since this engine
// reads a track's full extent in one call rather than incrementally.
func (t *Track) BatchSecs() int { return t.batchSecs }

// IndexPulses returns the absolute tick timestamps recorded at each
// index opcode encountered during the most recent flux generation.
func (t *Track) IndexPulses() []uint32 { return t.indexPulses }

// Version returns the monotonic counter bumped whenever the recorded
// index-pulse set changes length (spec §4.6: "the version counter is
// incremented").
func (t *Track) Version() uint32 { return t.version }

// ticksPerCellAt returns the 1/16-tick ticks-per-cell in effect at
// byte offset i of t.bits, honoring any SETBITRATE opcode that
// preceded it.
func (t *Track) ticksPerCellAt(i int) uint32 {
	if i < len(t.bitrateOps) && t.bitrateOps[i] != 0 {
		return bitrateScaleToTicksPerCell(t.bitrateOps[i])
	}
	return t.eng.TicksPerCell
}

// GenerateRevolutionFlux produces the flux-interval stream for one
// full revolution of this track (spec §4.6 "Flux generation
// (hfe_rdata_flux)"), resetting cur_bc/cur_ticks at the wrap point and
// recording tracklen_ticks and any index-pulse timestamps seen along
// the way.
//
// The firmware emits this incrementally, one ticks_per_cell-scaled
// byte at a time, bounded by the free space in read_bc on every call;
// this synthesizes a full revolution eagerly, in keeping with the
// same hosted adaptation used by track.EncodeTrack — the bounded,
// resumable discipline is realized by the ring-buffer layer instead.
func (t *Track) GenerateRevolutionFlux() (intervals []uint32, tracklenTicks uint32) {
	prevPulseCount := len(t.indexPulses)
	t.indexPulses = t.indexPulses[:0]
	t.curBC = 0
	t.curTicks16 = 0
	t.ticksSinceFlux = 0

	indexSet := make(map[int]bool, len(t.indexByteOffsets))
	for _, off := range t.indexByteOffsets {
		indexSet[off] = true
	}

	for i, b := range t.bits {
		if indexSet[i] {
			t.indexPulses = append(t.indexPulses, uint32(t.curTicks16>>4))
		}

		tpc := t.ticksPerCellAt(i)
		byteIntervals, newSince := mfm.FluxFromBitcells([]byte{b}, tpc, t.ticksSinceFlux)
		intervals = append(intervals, byteIntervals...)
		t.ticksSinceFlux = newSince
		t.curTicks16 += uint64(tpc) * 8
		t.curBC += 8
	}

	t.tracklenTicks = uint32(t.curTicks16 >> 4)
	if len(t.indexPulses) != prevPulseCount {
		t.version++
	}
	return intervals, t.tracklenTicks
}
