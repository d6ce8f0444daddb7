package probe

import "github.com/hxcfe/floppytrack/typetable"

// TI-99/4A Volume Information Block field offsets, sector 0 of the
// image (spec §4.2 "TI99: ... magic 'DSK' at offset 13").
const (
	ti99SecSize       = 256
	ti99OffTotalSecs  = 10 // big-endian uint16
	ti99OffSecsPerTrk = 12
	ti99OffMagic      = 13 // "DSK"
	ti99OffTracksSide = 17
	ti99OffSides      = 18

	ti99BadSectorMapSecs = 3
)

type ti99SizeClass struct {
	name    string
	nrSecs  int
	cyls    int
	sides   int
	density int // 1 = single, 2 = double
}

// ti99SizeClasses is ordered SSSD, DSSD, DSDD, DSDD80, DSHD80 — each
// double the payload of the previous (spec §4.2 "ambiguity at 2x and
// 4x sizes").
var ti99SizeClasses = []ti99SizeClass{
	{"SSSD", 9, 40, 1, 1},
	{"DSSD", 9, 40, 2, 1},
	{"DSDD", 18, 40, 2, 2},
	{"DSDD80", 18, 80, 2, 2},
	{"DSHD80", 36, 80, 2, 2},
}

// ProbeTI99 reads the Volume Information Block at sector 0 and
// resolves geometry from the file's total sector count, using the VIB
// fields to break ties between size classes whose payload is a power
// of two away from another's.
func ProbeTI99(header []byte, fileSize int64) (Result, bool) {
	if len(header) < ti99SecSize {
		return Result{}, false
	}
	if header[ti99OffMagic] != 'D' || header[ti99OffMagic+1] != 'S' || header[ti99OffMagic+2] != 'K' {
		return Result{}, false
	}
	if fileSize%ti99SecSize != 0 {
		return Result{}, false
	}

	totalSecs := fileSize / ti99SecSize
	if totalSecs > ti99BadSectorMapSecs {
		// A trailing bad-sector-map footer, if present, is exactly 3
		// sectors; trim it when doing so lands on a known size class.
		trimmed := totalSecs - ti99BadSectorMapSecs
		for _, c := range ti99SizeClasses {
			if trimmed == int64(c.cyls*c.sides*c.nrSecs) {
				totalSecs = trimmed
				break
			}
		}
	}

	vibSides := int(header[ti99OffSides])
	vibTracksPerSide := int(header[ti99OffTracksSide])

	var match *ti99SizeClass
	for i := range ti99SizeClasses {
		c := &ti99SizeClasses[i]
		if totalSecs == int64(c.cyls*c.sides*c.nrSecs) {
			if match == nil {
				match = c
			} else if vibSides == c.sides && vibTracksPerSide == c.cyls {
				// VIB breaks the tie in favor of this class.
				match = c
			}
		}
	}
	if match == nil {
		return Result{}, false
	}

	class := typetable.Cyls40
	if match.cyls > 60 {
		class = typetable.Cyls80
	}

	return Result{
		Entry: typetable.Entry{
			NrSecs:      match.nrSecs,
			NrSides:     match.sides,
			HasIAM:      true,
			Gap3:        84,
			Interleave:  1,
			SecSizeCode: 1, // 128 << 1 = 256 bytes
			Base:        1,
			CylsClass:   class,
			RPM:         300,
			Layout:      typetable.SequentialReverseSide1,
		},
		NrCyls:  match.cyls,
		BaseOff: 0,
	}, true
}
