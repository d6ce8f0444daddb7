// Package typetable implements the IMG geometry type tables and the
// matcher that resolves a concrete track geometry from a host profile
// and an image file's size (spec §4.1).
//
// Grounded structurally on the teacher's format-dispatch style
// (hfe/imageformat.go's DetectImageFormat: an ordered table walked
// top-to-bottom, first match wins) generalized from a filename-extension
// table to a cylinder-count/file-size table.
package typetable

import "github.com/hxcfe/floppytrack/hostprofile"

// CylsClass is the cylinder-count bracket a table entry is tried
// against: 40-class covers single-density/5.25" geometries (cylinders
// 38..42 tried), 80-class covers double-density/3.5" and HD geometries
// (cylinders 77..85 tried).
type CylsClass int

const (
	Cyls40 CylsClass = 40
	Cyls80 CylsClass = 80
)

// Layout identifies how a track's rotational sec_map translates into a
// file byte offset (spec §4.4).
type Layout int

const (
	Interleaved Layout = iota
	InterleavedSwapSides
	SequentialReverseSide1
)

// Entry is one row of a type table (spec §4.1: "ordered sequence of
// tuples").
type Entry struct {
	NrSecs              int
	NrSides             int // 1 or 2
	HasIAM              bool
	Gap3                int
	Interleave          int
	SecSizeCode         int // sector size is 128 << SecSizeCode bytes
	Base                int // 0 or 1
	InterTrackNumbering bool
	Skew                int
	CylsClass           CylsClass
	RPM                 int // 300 or 360
	Layout              Layout
	SkewCylsOnly        bool
	FM                  bool // FM-encoded (single density) rather than MFM
}

// SecSize returns the sector payload size in bytes for this entry.
func (e Entry) SecSize() int {
	return 128 << uint(e.SecSizeCode)
}

// Table is an ordered sequence of candidate geometries, walked in
// order by Match. Tables are authored so the most common geometry for
// a given file size appears first (spec §4.1: "ties are resolved by
// table order").
type Table []Entry

// Result is a resolved geometry: the winning Entry plus the cylinder
// count that made the file size match exactly.
type Result struct {
	Entry
	NrCyls int
}

// cylRange enumerates the candidate cylinder counts tried for a class,
// narrowest-to-widest around the nominal count (spec §4.1: "{38..42}"
// / "{77..85}").
func cylRange(class CylsClass) []int {
	switch class {
	case Cyls40:
		return []int{40, 39, 41, 38, 42}
	case Cyls80:
		return []int{80, 81, 79, 82, 78, 83, 77, 84, 85}
	default:
		return nil
	}
}

// Match walks table in order and returns the first entry whose
// (nr_cyls, cyl_size) product equals payloadSize, where cyl_size is the
// entry's per-cylinder byte count (sectors * sides * sector size).
func Match(table Table, payloadSize int64) (Result, bool) {
	for _, e := range table {
		cylSize := int64(e.NrSecs) * int64(e.NrSides) * int64(e.SecSize())
		if cylSize <= 0 {
			continue
		}
		for _, nrCyls := range cylRange(e.CylsClass) {
			if cylSize*int64(nrCyls) == payloadSize {
				return Result{Entry: e, NrCyls: nrCyls}, true
			}
		}
	}
	return Result{}, false
}

// ForProfile returns the built-in type table for the given host
// profile (spec §4.1 "host-profile dispatch"), falling back to the
// default table for profiles that share it (Gem, PCDOS, MSX all open
// standard PC-type geometries once their header probers run).
func ForProfile(p hostprofile.Profile) Table {
	switch p {
	case hostprofile.Akai:
		return akaiTable
	case hostprofile.Casio:
		return casioTable
	case hostprofile.Dec:
		return decTable
	case hostprofile.Ensoniq:
		return ensoniqTable
	case hostprofile.Fluke:
		return flukeTable
	case hostprofile.Kaypro:
		return kayproTable
	case hostprofile.Memotech:
		return memotechTable
	case hostprofile.Nascom:
		return nascomTable
	case hostprofile.PC98:
		return pc98Table
	case hostprofile.UKNC:
		return ukncTable
	default:
		return defaultTable
	}
}
