package probe

import (
	"encoding/binary"

	"github.com/hxcfe/floppytrack/typetable"
)

// fdiHeaderSize is the fixed 32-byte PC-9801 FDI header (spec §4.2
// "PC98-FDI: read 32-byte header"). Field offsets are reconstructed
// from the spec's description (header_size, density, sector-size,
// cyls/sides/secs) rather than transcribed from a vendor header dump,
// since none was available (see DESIGN.md).
const fdiHeaderSize = 32

const (
	fdiOffHeaderSize  = 4
	fdiOffDensity     = 8
	fdiOffSectorBytes = 12
	fdiOffCyls        = 16
	fdiOffSides       = 20
	fdiOffSecs        = 24
)

// ProbeFDI reads a PC-9801 FDI header and resolves geometry directly
// from its fields.
func ProbeFDI(header []byte, fileSize int64) (Result, bool) {
	if len(header) < fdiHeaderSize {
		return Result{}, false
	}

	headerSize := binary.LittleEndian.Uint32(header[fdiOffHeaderSize:])
	density := binary.LittleEndian.Uint32(header[fdiOffDensity:])
	sectorBytes := binary.LittleEndian.Uint32(header[fdiOffSectorBytes:])
	cyls := binary.LittleEndian.Uint32(header[fdiOffCyls:])
	sides := binary.LittleEndian.Uint32(header[fdiOffSides:])
	secs := binary.LittleEndian.Uint32(header[fdiOffSecs:])

	if cyls == 0 || sides == 0 || secs == 0 {
		return Result{}, false
	}

	rpm, gap3 := 360, 116
	if byte(density) == 0x30 {
		rpm, gap3 = 300, 84
	}

	secSizeCode := 3
	if sectorBytes == 512 {
		secSizeCode = 2
	}

	class := typetable.Cyls40
	if cyls > 60 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      int(secs),
			NrSides:     int(sides),
			HasIAM:      true,
			Gap3:        gap3,
			Interleave:  1,
			SecSizeCode: secSizeCode,
			Base:        1,
			CylsClass:   class,
			RPM:         rpm,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  int(cyls),
		BaseOff: int64(headerSize),
	}, true
}
