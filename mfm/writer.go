package mfm

import "encoding/binary"

// WordWriter builds a byte-aligned bitcell stream one 16-bit MFM/FM
// word at a time, tracking the cross-byte carry bit needed by
// EncodeMFMByte. This is the encode side of the track state machine's
// phase emission (spec §4.5): GAP/SYNC/IAM/IDAM/DAM/DATA regions are
// all built by repeated calls into one WordWriter per track revolution.
//
// Grounded on the teacher's bit-at-a-time mfm.Writer (writeHalfBit/
// writeBit/writeByte/writeMarker), generalized to the word-table codec
// in codec.go and to arbitrary gap/sector geometry instead of a fixed
// IBM-PC 512-byte layout.
type WordWriter struct {
	mode    SyncMode
	buf     []byte
	prevLow int // MFM: low data bit of the last emitted byte
}

// NewWordWriter creates a writer for the given codec mode.
func NewWordWriter(mode SyncMode) *WordWriter {
	return &WordWriter{mode: mode, buf: make([]byte, 0, 1024)}
}

func (w *WordWriter) appendWord(word uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], word)
	w.buf = append(w.buf, b[:]...)
}

// WriteByte encodes one data byte using the writer's codec mode.
func (w *WordWriter) WriteByte(b byte) {
	switch w.mode {
	case SyncMFM:
		word, carry := EncodeMFMByte(b, w.prevLow)
		w.prevLow = carry
		w.appendWord(word)
	case SyncFM:
		w.appendWord(EncodeFMByte(b))
	default:
		w.buf = append(w.buf, b)
	}
}

// WriteBytes encodes a run of data bytes.
func (w *WordWriter) WriteBytes(data []byte) {
	for _, b := range data {
		w.WriteByte(b)
	}
}

// WriteGapByte writes n repetitions of the gap-fill byte appropriate
// to the codec (0x4E for MFM, 0xFF for FM — spec glossary "GAP").
func (w *WordWriter) WriteGapByte(n int) {
	fill := byte(0x4E)
	if w.mode == SyncFM {
		fill = 0xFF
	}
	for i := 0; i < n; i++ {
		w.WriteByte(fill)
	}
}

// WriteSyncFill writes n repetitions of the zero byte that must
// immediately precede every address-mark sync run (spec §4.3
// GAP_SYNC): ScanMFMSync's rolling window matches 0x00A1A1A1/
// 0x00C2C2C2, so the byte decoding to 0x00 right before the sync
// triple is load-bearing, not cosmetic filler like a GAP region.
// Encoded through the normal per-mode table rather than WriteGapByte's
// 0x4E/0xFF gap fill.
func (w *WordWriter) WriteSyncFill(n int) {
	for i := 0; i < n; i++ {
		w.WriteByte(0x00)
	}
}

// WriteSyncWord emits a 16-bit address-mark sync word verbatim,
// bypassing the codec table (spec §4.5: "written raw"). carryLowBit is
// the low data bit of the byte this sync word stands in for (0xA1 ends
// in ...001, 0xC2 in ...010), seeding the next MFM byte's clock-bit
// suppression correctly.
func (w *WordWriter) WriteSyncWord(word uint16, carryLowBit int) {
	w.appendWord(word)
	w.prevLow = carryLowBit
}

// Bytes returns the accumulated bitcell stream.
func (w *WordWriter) Bytes() []byte {
	return w.buf
}

// Len returns the number of bitcells (bits) emitted so far.
func (w *WordWriter) Len() int {
	return len(w.buf) * 8
}
