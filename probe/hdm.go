package probe

import "github.com/hxcfe/floppytrack/typetable"

// ProbeHDM matches the PC-9801 HDM format, which carries no header:
// geometry is the fixed 2HD default (spec §4.2 "PC98-HDM: fixed 77
// cyl, 2 side, 8 sec, sec-size-code 3, 360 RPM"). The caller is
// expected to have already dispatched by filename extension; this
// prober only validates the file size matches the fixed geometry.
func ProbeHDM(header []byte, fileSize int64) (Result, bool) {
	const (
		nrCyls  = 77
		nrSides = 2
		nrSecs  = 8
		secSize = 1024 // 128 << 3
	)
	if fileSize != int64(nrCyls*nrSides*nrSecs*secSize) {
		return Result{}, false
	}
	return Result{
		Entry: typetable.Entry{
			NrSecs:      nrSecs,
			NrSides:     nrSides,
			HasIAM:      true,
			Gap3:        116,
			Interleave:  1,
			SecSizeCode: 3,
			Base:        1,
			CylsClass:   typetable.Cyls80,
			RPM:         360,
			Layout:      typetable.Interleaved,
		},
		NrCyls:  nrCyls,
		BaseOff: 0,
	}, true
}
