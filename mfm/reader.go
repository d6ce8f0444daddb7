package mfm

import "fmt"

// BitReader scans an incoming raw bitcell stream (MSB-first byte
// order) bit by bit, as the write-path decoder must (spec §4.5: "Scan
// for 0x4489 (MFM) or FM sync"). Unlike WordWriter's byte-aligned
// encode, the decoder cannot assume byte alignment with the host's
// write start, so it reads and resynchronizes one bit at a time.
//
// Grounded on the teacher's mfm.Reader (readHalfBit/readBit/readByte/
// scanIBMPC), generalized from a fixed IBM-PC sync search to an
// arbitrary target sync word.
type BitReader struct {
	data   []byte
	bitPos int
}

// NewBitReader creates a reader over a raw bitcell stream.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// ReadHalfBit reads one raw bitcell.
func (r *BitReader) ReadHalfBit() (int, error) {
	if r.bitPos >= len(r.data)*8 {
		return -1, fmt.Errorf("mfm: end of bitstream")
	}
	byteIdx := r.bitPos / 8
	bitIdx := 7 - (r.bitPos & 7)
	bit := (r.data[byteIdx] >> uint(bitIdx)) & 1
	r.bitPos++
	return int(bit), nil
}

// ReadMFMBit reads one MFM data bit (a clock half-bit followed by a
// data half-bit), discarding the clock half-bit.
func (r *BitReader) ReadMFMBit() (int, error) {
	if _, err := r.ReadHalfBit(); err != nil {
		return -1, err
	}
	return r.ReadHalfBit()
}

// ReadMFMByte reads 8 MFM data bits as one byte.
func (r *BitReader) ReadMFMByte() (byte, error) {
	var result byte
	for i := 0; i < 8; i++ {
		bit, err := r.ReadMFMBit()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | byte(bit)
	}
	return result, nil
}

// ReadFMBit reads one FM data bit (a clock half-bit, always expected
// 1 outside of sync marks, followed by a data half-bit).
func (r *BitReader) ReadFMBit() (int, error) {
	if _, err := r.ReadHalfBit(); err != nil {
		return -1, err
	}
	return r.ReadHalfBit()
}

// ReadFMByte reads 8 FM data bits as one byte.
func (r *BitReader) ReadFMByte() (byte, error) {
	var result byte
	for i := 0; i < 8; i++ {
		bit, err := r.ReadFMBit()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | byte(bit)
	}
	return result, nil
}

// ScanMFMSync scans forward for the three-byte MFM sync run
// (0x00 A1 A1 A1 or 0x00 C2 C2 C2, i.e. a leading zero byte followed
// by three sync bytes) decoded naively as data bits, resynchronizing
// phase whenever a long run of all-ones appears (a flux transition on
// every cell, which can only happen mid-resync). target is
// 0x00A1A1A1 or 0x00C2C2C2. Returns the tag byte immediately following
// the third sync byte.
func (r *BitReader) ScanMFMSync(target uint32) (tag byte, err error) {
	history := uint32(0x13713713)
	for {
		bit, err := r.ReadMFMBit()
		if err != nil {
			return 0, err
		}
		history = (history << 1) | uint32(bit)

		if history == 0xffffffff {
			// Flux on every cell: resynchronize by one half-bit.
			if _, err := r.ReadHalfBit(); err != nil {
				return 0, err
			}
			history = 0
			continue
		}

		if history == target {
			return r.ReadMFMByte()
		}
	}
}

// ScanFMSync scans for an FM sync mark whose clock pattern is a key of
// wantClocks, identified by its violating clock pattern rather than by
// data content (since FM has no "00" lead-in convention the way MFM
// does). It reads raw half-bit pairs and checks the clock half-bit of
// each pair against the known violating clocks, returning the tag that
// wantClocks maps the matched clock to; the mark's data bits are not
// examined.
func (r *BitReader) ScanFMSync(wantClocks map[byte]byte) (tag byte, err error) {
	for {
		startPos := r.bitPos
		var clockBits byte
		for i := 0; i < 8; i++ {
			c, err := r.ReadHalfBit()
			if err != nil {
				return 0, err
			}
			if _, err := r.ReadHalfBit(); err != nil { // data half-bit, unused for sync detection
				return 0, err
			}
			clockBits = (clockBits << 1) | byte(c)
		}
		if tagByte, found := wantClocks[clockBits]; found {
			return tagByte, nil
		}
		// Not a sync: rewind to one half-bit past where we started and
		// keep scanning bit-by-bit rather than byte-by-byte, since the
		// host's write start is not guaranteed byte aligned.
		r.bitPos = startPos + 1
	}
}

// Remaining reports how many raw bitcells are left unread.
func (r *BitReader) Remaining() int {
	return len(r.data)*8 - r.bitPos
}

// Reset repositions the reader at the given raw bit offset.
func (r *BitReader) Reset(bitPos int) {
	r.bitPos = bitPos
}
