package typetable

import "encoding/binary"

// BPBSignatureOffset is the byte offset of the 0x55 0xAA boot-sector
// signature (spec §4.1 "sig 0xAA55 required for PC-DOS").
const BPBSignatureOffset = 510

// BPB is the handful of BIOS Parameter Block fields the matcher reads
// directly off sector 0 instead of consulting a type table (spec §4.1
// "BPB probe at offsets {11, 19, 24, 26, 510}").
type BPB struct {
	BytesPerSector int
	TotalSectors   int // field at offset 19 (16-bit) if non-zero
	SectorsPerTrack int
	NumHeads        int
}

// ProbeBPB reads a BIOS Parameter Block from the first 512 bytes of a
// boot sector. requireSignature controls whether the 0xAA55 signature
// at offset 510 is mandatory (PC-DOS: required; MSX: tolerated
// absent, per spec §4.1).
func ProbeBPB(sector []byte, requireSignature bool) (BPB, bool) {
	if len(sector) < 512 {
		return BPB{}, false
	}
	sig := binary.LittleEndian.Uint16(sector[BPBSignatureOffset:])
	if requireSignature && sig != 0xAA55 {
		return BPB{}, false
	}

	bytesPerSector := int(binary.LittleEndian.Uint16(sector[11:]))
	totalSectors := int(binary.LittleEndian.Uint16(sector[19:]))
	sectorsPerTrack := int(binary.LittleEndian.Uint16(sector[24:]))
	numHeads := int(binary.LittleEndian.Uint16(sector[26:]))

	if bytesPerSector == 0 || sectorsPerTrack == 0 || numHeads == 0 {
		return BPB{}, false
	}

	return BPB{
		BytesPerSector:  bytesPerSector,
		TotalSectors:    totalSectors,
		SectorsPerTrack: sectorsPerTrack,
		NumHeads:        numHeads,
	}, true
}

// secSizeCodeFor returns the sec_size_code (128 << code == bytes) for
// a BPB-reported sector size, or false if it is not a power-of-two
// multiple of 128 in the supported range.
func secSizeCodeFor(bytesPerSector int) (int, bool) {
	for code := 0; code <= 6; code++ {
		if 128<<uint(code) == bytesPerSector {
			return code, true
		}
	}
	return 0, false
}

// ToEntry derives a type-table Entry directly from a probed BPB,
// bypassing the built-in tables entirely (spec §4.1: "a BPB probe ...
// may produce geometry directly").
func (b BPB) ToEntry(nrCyls int) (Entry, bool) {
	code, ok := secSizeCodeFor(b.BytesPerSector)
	if !ok {
		return Entry{}, false
	}
	class := Cyls40
	if nrCyls > 60 {
		class = Cyls80
	}
	return Entry{
		NrSecs:      b.SectorsPerTrack,
		NrSides:     b.NumHeads,
		HasIAM:      true,
		Gap3:        84,
		Interleave:  1,
		SecSizeCode: code,
		Base:        1,
		Skew:        0,
		CylsClass:   class,
		RPM:         300,
		Layout:      Interleaved,
	}, true
}
