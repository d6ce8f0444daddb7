package probe

import "github.com/hxcfe/floppytrack/typetable"

// ProbeJVC resolves a JVC (Jeff Vavasour CoCo) image's geometry from
// its optional 0..5 byte header (spec §4.2 "JVC: header length derived
// from file_size mod 256; tuple {spt, sides, ssize_code, sec_id,
// attr}; cylinders derived from remaining size; if computed cyls >= 88
// and sides = 1, promote to sides = 2"). header must hold at least the
// first 5 bytes of the file (or fewer if the file itself is shorter).
func ProbeJVC(header []byte, fileSize int64) (Result, bool) {
	headerLen := int(fileSize % 256)
	if headerLen > 5 {
		return Result{}, false
	}
	if headerLen > len(header) {
		return Result{}, false
	}

	spt, sides, ssizeCode, secID, attr := 18, 1, 1, 1, 0
	if headerLen >= 1 {
		spt = int(header[0])
	}
	if headerLen >= 2 {
		sides = int(header[1])
	}
	if headerLen >= 3 {
		ssizeCode = int(header[2])
	}
	if headerLen >= 4 {
		secID = int(header[3])
	}
	if headerLen >= 5 {
		attr = int(header[4])
	}
	_ = secID
	_ = attr

	if spt == 0 || sides == 0 {
		return Result{}, false
	}

	secSize := 128 << uint(ssizeCode)
	payload := fileSize - int64(headerLen)
	cylBytes := int64(spt * sides * secSize)
	if cylBytes <= 0 || payload%cylBytes != 0 {
		return Result{}, false
	}
	nrCyls := int(payload / cylBytes)

	if nrCyls >= 88 && sides == 1 {
		sides = 2
		cylBytes = int64(spt * sides * secSize)
		if payload%cylBytes != 0 {
			return Result{}, false
		}
		nrCyls = int(payload / cylBytes)
	}

	class := typetable.Cyls40
	if nrCyls > 60 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      spt,
			NrSides:     sides,
			HasIAM:      true,
			Gap3:        84,
			Interleave:  1,
			SecSizeCode: ssizeCode,
			Base:        secID,
			CylsClass:   class,
			RPM:         300,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  nrCyls,
		BaseOff: int64(headerLen),
	}, true
}
