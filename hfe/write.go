package hfe

import "fmt"

// WriteBatch encodes newBits (the plain bitcell bytes produced by a
// caller's write-path encoder, LSB-first, same length as t.bits) back
// into the track's on-disk extent (spec §4.6 "Write"). For v3, index
// opcodes are re-inserted before the data byte they preceded and a
// bitrate opcode is written wherever the recorded rate changes; nop and
// skip opcodes of the original side are not kept, rand slots are
// written as plain data, and the rest of the extent is padded with nop
// opcodes.
//
// This performs one read-modify-write of the track's full extent
// rather than the firmware's incremental 8×512-byte dirty-window
// batching; the effect on the file is identical (the window is always
// flushed before the next track is touched), and the dirty-window
// bookkeeping itself is therefore not needed in a hosted
// implementation that holds one track at a time.
func (t *Track) WriteBatch(newBits []byte) error {
	if len(newBits) != len(t.bits) {
		return fmt.Errorf("hfe: write data is %d bytes, track holds %d", len(newBits), len(t.bits))
	}

	readLen := t.trkLen * 2
	if readLen%BlockSize != 0 {
		readLen = (readLen/BlockSize + 1) * BlockSize
	}
	raw := make([]byte, readLen)
	if _, err := t.eng.r.ReadAt(raw, int64(t.blockOff)*BlockSize); err != nil {
		return fmt.Errorf("hfe: read existing track %d: %w", t.index, err)
	}
	side0, side1 := demuxHeads(raw, readLen)

	var encoded []byte
	var err error
	if t.eng.IsV3 {
		encoded, err = t.reencodeV3(newBits)
	} else {
		encoded = append([]byte(nil), newBits...)
	}
	if err != nil {
		return fmt.Errorf("hfe: re-encode track %d: %w", t.index, err)
	}
	if len(encoded) > t.trkLen {
		encoded = encoded[:t.trkLen]
	}

	if t.side == 0 {
		copy(side0, encoded)
	} else {
		copy(side1, encoded)
	}

	out := make([]byte, readLen)
	for block := 0; block < readLen; block += BlockSize {
		half := BlockSize / 2
		copy(out[block:block+half], side0[block/2:])
		copy(out[block+half:block+BlockSize], side1[block/2:])
	}

	if _, err := t.eng.w.WriteAt(out, int64(t.blockOff)*BlockSize); err != nil {
		return fmt.Errorf("hfe: write track %d: %w", t.index, err)
	}
	t.bits = newBits
	return nil
}

// reencodeV3 rebuilds the opcode-bearing byte stream for this side:
// index opcodes at the data positions recorded when the track was
// decoded, a bitrate opcode (with operand) wherever the recorded rate
// changes, newBits' data everywhere else, and nop padding at the end.
func (t *Track) reencodeV3(newBits []byte) ([]byte, error) {
	out := make([]byte, 0, t.trkLen)
	bitPos := 0 // index into newBits
	nextIndex := 0

	rate := byte(0)
	for bitPos < len(newBits) {
		if nextIndex < len(t.indexByteOffsets) && t.indexByteOffsets[nextIndex] == bitPos {
			out = append(out, encodeOpcodeByte(opIndex))
			nextIndex++
		}
		if bitPos < len(t.bitrateOps) && t.bitrateOps[bitPos] != rate && t.bitrateOps[bitPos] != 0 {
			rate = t.bitrateOps[bitPos]
			out = append(out, encodeOpcodeByte(opBitrate), rate)
		}
		out = append(out, newBits[bitPos])
		bitPos++
	}
	if len(out) > t.trkLen {
		return nil, fmt.Errorf("hfe: re-encoded track overflows %d-byte extent by %d bytes", t.trkLen, len(out)-t.trkLen)
	}
	for len(out) < t.trkLen {
		out = append(out, encodeOpcodeByte(opNop))
	}
	return out, nil
}
