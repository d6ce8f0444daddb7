// Package mfm implements the MFM/FM bitcell codec: byte<->16-bit-word
// encoding with the "suppress clock if previous data bit was 1" rule,
// FM clock/data interleaving, and address-mark sync words (spec §4.5,
// §4.6 note, §9). Grounded on the bit-level writer/reader style of the
// teacher's mfm/writer.go and mfm/reader.go.
package mfm

// SyncMode identifies which codec governs the current track, or NONE
// for pre-encoded HFE tracks that bypass the codec entirely (spec §3).
type SyncMode int

const (
	SyncNone SyncMode = iota
	SyncMFM
	SyncFM
)

// Address-mark sync words, written raw onto the bitcell stream (spec
// §4.5): 0xA1 with a clock-bit violation (MFM data/IDAM/DAM sync) and
// 0xC2 with a clock-bit violation (MFM index-mark sync).
const (
	MFMSyncA1 uint16 = 0x4489
	MFMSyncC2 uint16 = 0x5224
)

// FM clock patterns used for the FM address-mark sync words: the
// marker byte's data bits are kept, its 8 clock half-bits are replaced
// with a fixed violating pattern instead of the normal all-ones clock
// (spec §4.5 "FM encoding rule"). 0xFE(IDAM)/0xFB(DAM)/0xF8(deleted
// DAM) use clock 0xC7; 0xFC(IAM) uses clock 0xD7.
const (
	fmAddressMarkClock byte = 0xC7
	fmIndexMarkClock   byte = 0xD7
)

// mfmEncodeTable[b] is the 16-bit MFM pattern for data byte b, built
// assuming the bit immediately preceding this byte was 0. The actual
// preceding bit is folded in at encode time by clearing bit 15 when
// it was 1 (spec §4.5: "out = pattern & ~(prev_low_bit << 15)").
var mfmEncodeTable [256]uint16

// init fills mfmEncodeTable. The inverse direction (mfmtobin's role per
// spec §9: extracting the 8 data bits from a 16-bit MFM word) has no
// table; DecodeMFMWord computes it directly, since the extraction is a
// fixed bit permutation.
func init() {
	for b := 0; b < 256; b++ {
		var pattern uint16
		prevBit := 0
		for j := 0; j < 8; j++ {
			d := (b >> uint(7-j)) & 1
			clock := 0
			if prevBit == 0 && d == 0 {
				clock = 1
			}
			pattern |= uint16(clock) << uint(15-2*j)
			pattern |= uint16(d) << uint(14-2*j)
			prevBit = d
		}
		mfmEncodeTable[b] = pattern
	}
}

// EncodeMFMByte encodes one data byte as a 16-bit MFM word, given the
// low (last) data bit of the previously-emitted byte (0 if this is
// the first byte on the track, or the byte immediately follows a raw
// sync word). It returns the word and the new carry (this byte's low
// data bit) for the next call.
func EncodeMFMByte(b byte, prevLowBit int) (word uint16, newPrevLowBit int) {
	pattern := mfmEncodeTable[b]
	if prevLowBit != 0 {
		pattern &^= 1 << 15
	}
	return pattern, int(b & 1)
}

// DecodeMFMWord extracts the data byte from a 16-bit MFM word,
// ignoring the clock bits.
func DecodeMFMWord(w uint16) byte {
	var b byte
	for j := 0; j < 8; j++ {
		bit := (w >> uint(14-2*j)) & 1
		b = (b << 1) | byte(bit)
	}
	return b
}

// EncodeFMByte encodes one data byte in FM: every data bit is preceded
// by a clock bit of 1 (spec: "pattern is mfmtab[b] | 0xAAAA"). Unlike
// MFM, FM has no cross-byte carry — every clock bit is always 1.
func EncodeFMByte(b byte) uint16 {
	var pattern uint16
	for j := 0; j < 8; j++ {
		d := (b >> uint(7-j)) & 1
		pattern |= uint16(d) << uint(14-2*j)
	}
	return pattern | 0xAAAA
}

// DecodeFMWord extracts the data byte from a 16-bit FM word.
func DecodeFMWord(w uint16) byte {
	return DecodeMFMWord(w) // data bits sit at the same positions
}

// EncodeFMSync encodes an FM address-mark byte with a violating 8-bit
// clock pattern instead of the normal all-ones clock, so the
// decoder's sync scan can distinguish it from ordinary data (spec:
// "fm_sync(byte, clk) ... keeps only data bits from mfmtab[byte] and
// inserts a custom clock pattern").
func EncodeFMSync(b byte, clock byte) uint16 {
	var word uint16
	for j := 0; j < 8; j++ {
		d := (b >> uint(7-j)) & 1
		c := (clock >> uint(7-j)) & 1
		word |= uint16(c) << uint(15-2*j)
		word |= uint16(d) << uint(14-2*j)
	}
	return word
}

// FM address-mark tag bytes (spec §4.5, §4.2 FM formats).
const (
	TagIAM        byte = 0xFC
	TagIDAM       byte = 0xFE
	TagDAM        byte = 0xFB
	TagDeletedDAM byte = 0xF8
)

// FMIndexMarkClock and FMAddressMarkClock are the two violating
// 8-bit clock patterns used by EncodeFMSync/ScanFMSync.
func FMIndexMarkClock() byte   { return fmIndexMarkClock }
func FMAddressMarkClock() byte { return fmAddressMarkClock }
