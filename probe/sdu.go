package probe

import (
	"encoding/binary"

	"github.com/hxcfe/floppytrack/typetable"
)

// sduHeaderSize is the 46-byte SABDU header (spec §4.2 "SDU: 46-byte
// SABDU header giving (cyls, sides, secs)"). Field offsets are
// reconstructed from the spec's description (see DESIGN.md).
const sduHeaderSize = 46

const (
	sduOffCyls  = 0
	sduOffSides = 2
	sduOffSecs  = 4
)

var sduValidSecs = map[int]bool{9: true, 18: true, 36: true}

// ProbeSDU reads a SABDU header and accepts only the documented
// (cyls, sides, secs) combinations.
func ProbeSDU(header []byte, fileSize int64) (Result, bool) {
	if len(header) < sduHeaderSize {
		return Result{}, false
	}

	cyls := binary.LittleEndian.Uint16(header[sduOffCyls:])
	sides := binary.LittleEndian.Uint16(header[sduOffSides:])
	secs := binary.LittleEndian.Uint16(header[sduOffSecs:])

	if cyls != 40 && cyls != 80 {
		return Result{}, false
	}
	if sides != 1 && sides != 2 {
		return Result{}, false
	}
	if !sduValidSecs[int(secs)] {
		return Result{}, false
	}

	class := typetable.Cyls40
	if cyls == 80 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      int(secs),
			NrSides:     int(sides),
			HasIAM:      true,
			Gap3:        84,
			Interleave:  1,
			SecSizeCode: 2,
			Base:        1,
			CylsClass:   class,
			RPM:         300,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  int(cyls),
		BaseOff: sduHeaderSize,
	}, true
}
