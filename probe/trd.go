package probe

import "github.com/hxcfe/floppytrack/typetable"

// trdGeometryOffset is the byte offset of the TRD geometry byte (spec
// §4.2 "TRD: geometry byte at offset 0x8E3").
const trdGeometryOffset = 0x8E3

type trdGeometry struct {
	cyls  int
	sides int
}

var trdGeometryByte = map[byte]trdGeometry{
	0x16: {80, 2},
	0x17: {40, 2},
	0x18: {80, 1},
	0x19: {40, 1},
}

const (
	trdNrSecs  = 16
	trdSecSize = 256 // 128 << 1
)

// ProbeTRD resolves a TR-DOS (Beta Disk) image's geometry from the
// geometry byte at 0x8E3, falling back to a size-based guess when the
// byte does not hold one of the four known values.
func ProbeTRD(header []byte, fileSize int64) (Result, bool) {
	cylBytes := int64(trdNrSecs * trdSecSize)

	var geom trdGeometry
	if len(header) > trdGeometryOffset {
		if g, ok := trdGeometryByte[header[trdGeometryOffset]]; ok {
			geom = g
		}
	}
	if geom.cyls == 0 {
		// Size-based guess: try the four known (cyls, sides)
		// combinations in the same preference order as the geometry
		// byte table.
		for _, g := range []trdGeometry{{80, 2}, {40, 2}, {80, 1}, {40, 1}} {
			if fileSize == int64(g.cyls*g.sides)*cylBytes {
				geom = g
				break
			}
		}
	}
	if geom.cyls == 0 {
		return Result{}, false
	}

	class := typetable.Cyls40
	if geom.cyls > 60 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      trdNrSecs,
			NrSides:     geom.sides,
			HasIAM:      true,
			Gap3:        57,
			Interleave:  1,
			SecSizeCode: 1,
			Base:        1,
			CylsClass:   class,
			RPM:         300,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  geom.cyls,
		BaseOff: 0,
	}, true
}
