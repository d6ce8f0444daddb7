package probe

import (
	"encoding/binary"

	"github.com/hxcfe/floppytrack/typetable"
)

// VDK header layout (spec §4.2 "VDK: magic 'dk', header length from
// field; cyls/sides from header"), reconstructed from the spec's
// description (see DESIGN.md): 2-byte magic, 2-byte header length,
// then track/side counts.
const (
	vdkMinHeaderSize = 12
	vdkOffMagic      = 0
	vdkOffHeaderLen  = 2
	vdkOffNumTracks  = 8
	vdkOffNumSides   = 9
)

// ProbeVDK reads a Color Computer VDK header.
func ProbeVDK(header []byte, fileSize int64) (Result, bool) {
	if len(header) < vdkMinHeaderSize {
		return Result{}, false
	}
	if header[vdkOffMagic] != 'd' || header[vdkOffMagic+1] != 'k' {
		return Result{}, false
	}

	headerLen := binary.LittleEndian.Uint16(header[vdkOffHeaderLen:])
	nrCyls := int(header[vdkOffNumTracks])
	nrSides := int(header[vdkOffNumSides])
	if nrCyls == 0 || nrSides == 0 {
		return Result{}, false
	}

	class := typetable.Cyls40
	if nrCyls > 60 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      18,
			NrSides:     nrSides,
			HasIAM:      true,
			Gap3:        20,
			Interleave:  1,
			SecSizeCode: 1, // 128 << 1 = 256 bytes
			Base:        1,
			CylsClass:   class,
			RPM:         300,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  nrCyls,
		BaseOff: int64(headerLen),
	}, true
}
