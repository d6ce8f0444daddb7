package hfe

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/hxcfe/floppytrack/clock"
)

// Engine is an open HFE image (spec §4.6 "Open"). It owns the file
// handle and the header-derived constants that every track shares;
// per-track state lives in Track, produced by SeekTrack.
type Engine struct {
	r  io.ReaderAt
	w  io.WriterAt
	Header       Header
	IsV3         bool
	DoubleStep   bool
	TlutBase     int64 // block offset of the track lookup table
	WriteBCTicks uint32
	TicksPerCell uint32 // nominal; overridden per-byte by a bitrate opcode
}

// Open parses the header of an HFE image backed by r (and, for
// writes, w — the same handle opened read-write).
func Open(r io.ReaderAt, w io.WriterAt) (*Engine, error) {
	block := make([]byte, headerSize)
	if _, err := r.ReadAt(block, 0); err != nil {
		return nil, fmt.Errorf("hfe: read header: %w", err)
	}
	h, err := parseHeader(block)
	if err != nil {
		return nil, err
	}

	sig := string(h.Signature[:])
	isV3 := sig == SignatureV3
	isV1 := sig == SignatureV1
	if !isV1 && !isV3 {
		return nil, fmt.Errorf("hfe: bad signature %q", sig)
	}
	if isV3 && h.FormatRevision != 0 {
		return nil, fmt.Errorf("hfe: unsupported v3 format revision %d", h.FormatRevision)
	}
	if isV1 && h.FormatRevision > 1 {
		return nil, fmt.Errorf("hfe: unsupported v1 format revision %d", h.FormatRevision)
	}
	if isV1 && h.FormatRevision == 1 {
		return nil, fmt.Errorf("hfe: v2 (format revision 1) is not supported")
	}
	if h.BitRate == 0 {
		return nil, fmt.Errorf("hfe: zero bit rate")
	}
	if h.NumberOfTrack == 0 || h.NumberOfSide == 0 {
		return nil, fmt.Errorf("hfe: zero tracks or sides")
	}

	writeBCTicks := uint32(clock.SysclkUs(500)) / uint32(h.BitRate)

	return &Engine{
		r:            r,
		w:            w,
		Header:       h,
		IsV3:         isV3,
		DoubleStep:   h.SingleStep == 0,
		TlutBase:     int64(h.TrackListOffset),
		WriteBCTicks: writeBCTicks,
		TicksPerCell: writeBCTicks * 16,
	}, nil
}

// bitrateScaleToTicksPerCell converts a v3 SETBITRATE operand byte
// into 1/16-tick ticks-per-cell (spec §4.6: "ticks_per_cell =
// sysclk_us(2)·16·x/72").
func bitrateScaleToTicksPerCell(x byte) uint32 {
	return uint32(clock.SysclkUs(2)) * 16 * uint32(x) / 72
}

// SeekTrack resolves cylinder cyl's LUT entry — shared by both
// heads, per spec's "two heads share the 512-byte block" — to its
// on-disk extent, reads and decodes the requested side's bitcell
// data, and returns a Track ready for flux generation or write-back
// (spec §4.6 "Track seek").
func (e *Engine) SeekTrack(cyl, side int) (*Track, error) {
	if cyl < 0 || cyl >= int(e.Header.NumberOfTrack) {
		return nil, fmt.Errorf("hfe: cylinder %d out of range", cyl)
	}
	if side < 0 || side >= int(e.Header.NumberOfSide) {
		return nil, fmt.Errorf("hfe: side %d out of range", side)
	}
	trackIdx := cyl*int(e.Header.NumberOfSide) + side

	entryOff := e.TlutBase*BlockSize + int64(cyl)*4
	var raw [4]byte
	if _, err := e.r.ReadAt(raw[:], entryOff); err != nil {
		return nil, fmt.Errorf("hfe: read track list entry for cylinder %d: %w", cyl, err)
	}
	blockOff := binary.LittleEndian.Uint16(raw[0:2])
	declaredLen := binary.LittleEndian.Uint16(raw[2:4])

	trkLen := int(declaredLen) / 2 // two heads share the declared length
	readLen := int(declaredLen)
	if readLen%BlockSize != 0 {
		readLen = (readLen/BlockSize + 1) * BlockSize
	}

	raw2 := make([]byte, readLen)
	if _, err := e.r.ReadAt(raw2, int64(blockOff)*BlockSize); err != nil {
		return nil, fmt.Errorf("hfe: read track %d data: %w", trackIdx, err)
	}

	side0, side1 := demuxHeads(raw2, readLen)
	sideRaw := side0
	if side == 1 {
		sideRaw = side1
	}
	sideRaw = sideRaw[:trkLen]

	batchSecs := 8
	if e.WriteBCTicks > uint32(clock.SysclkNs(1500)) {
		batchSecs = 2
	}

	t := &Track{
		eng:        e,
		index:      trackIdx,
		side:       side,
		blockOff:   blockOff,
		trkLen:     trkLen,
		trackLenBC: uint32(trkLen) * 8,
		batchSecs:  batchSecs,
	}

	if e.IsV3 {
		bits, bitrateOps, indexOffs, err := decodeOpcodesV3(sideRaw)
		if err != nil {
			return nil, fmt.Errorf("hfe: decode track %d opcodes: %w", trackIdx, err)
		}
		t.bits = bits
		t.bitrateOps = bitrateOps
		t.indexByteOffsets = indexOffs
	} else {
		t.bits = sideRaw
		t.bitrateOps = make([]byte, len(sideRaw))
	}

	return t, nil
}

// demuxHeads splits a raw interleaved track buffer into its two
// per-side byte streams: each 512-byte block holds 256 bytes of side
// 0 followed by 256 bytes of side 1 (spec §3 "HFE block").
func demuxHeads(raw []byte, length int) (side0, side1 []byte) {
	side0 = make([]byte, length/2)
	side1 = make([]byte, length/2)
	for block := 0; block < length; block += BlockSize {
		half := BlockSize / 2
		copy(side0[block/2:], raw[block:block+half])
		if block+BlockSize <= length {
			copy(side1[block/2:], raw[block+half:block+BlockSize])
		}
	}
	return side0, side1
}

// decodeOpcodesV3 interprets the v3 opcode stream of one side's raw
// bytes (spec §4.6 "Opcodes (v3 only)"), returning the plain bitcell
// bytes with opcodes stripped out, a parallel per-byte SETBITRATE
// operand (0 meaning "use the header's nominal rate"), and the byte
// offsets (into the returned bits) at which an index opcode fired.
func decodeOpcodesV3(raw []byte) (bits []byte, bitrateOps []byte, indexOffsets []int, err error) {
	bits = make([]byte, 0, len(raw))
	bitrateOps = make([]byte, 0, len(raw))
	currentRate := byte(0)

	i := 0
	for i < len(raw) {
		b := raw[i]
		if !isOpcodeByte(b) {
			bits = append(bits, b)
			bitrateOps = append(bitrateOps, currentRate)
			i++
			continue
		}

		switch decodeOpcode(b) {
		case opNop:
			i++
		case opIndex:
			indexOffsets = append(indexOffsets, len(bits))
			i++
		case opBitrate:
			if i+1 >= len(raw) {
				return nil, nil, nil, fmt.Errorf("hfe: truncated bitrate opcode")
			}
			currentRate = raw[i+1]
			i += 2
		case opSkip:
			if i+1 >= len(raw) {
				return nil, nil, nil, fmt.Errorf("hfe: truncated skip opcode")
			}
			skipBits := nibbleReverse(raw[i+1]) & 0x07
			i += 2
			// The spec's skip opcode drops up to 7 sub-byte bits from the
			// following byte; since this engine operates byte-granular
			// (no partial-byte output unit exists in this representation),
			// a non-zero skip count drops that whole following byte.
			if skipBits > 0 && i < len(raw) {
				i++
			}
		case opRand:
			bits = append(bits, byte(rand.Intn(256)))
			bitrateOps = append(bitrateOps, currentRate)
			i++
		default:
			return nil, nil, nil, fmt.Errorf("hfe: unknown opcode byte 0x%02X", b)
		}
	}
	return bits, bitrateOps, indexOffsets, nil
}
