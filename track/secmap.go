package track

import "github.com/hxcfe/floppytrack/typetable"

// BuildSecMap computes the rotational-order sector-ID vector for one
// track (spec §4.4). cyl and side identify the track; track is the
// linear track index cyl*nr_sides+side, used when skew is measured
// per-track rather than per-cylinder.
func BuildSecMap(g Geometry, cyl, side, track int) []int {
	n := g.NrSectors
	secMap := make([]int, n)
	occupied := make([]bool, n)

	skewUnit := track
	if g.SkewCylsOnly {
		skewUnit = cyl
	}
	pos := (skewUnit * g.Skew) % n
	if pos < 0 {
		pos += n
	}

	base := g.SecBase[side]
	for i := 0; i < n; i++ {
		for occupied[pos] {
			pos = (pos + 1) % n
		}
		secMap[pos] = i + base
		occupied[pos] = true
		pos = (pos + g.Interleave) % n
	}
	return secMap
}

// TrackOffset computes the file byte offset of a track's first
// sector, per the layout policy selected at open (spec §4.4).
func TrackOffset(g Geometry, cyl, side int) int64 {
	trkLen := int64(g.NrSectors) * int64(g.SecSize())
	var trackIdx int64

	switch g.Layout {
	case typetable.InterleavedSwapSides:
		swapped := side ^ (g.NrSides - 1)
		trackIdx = int64(cyl*g.NrSides + swapped)
		return g.BaseOff + trackIdx*trkLen
	case typetable.SequentialReverseSide1:
		if side == 0 {
			return g.BaseOff + int64(cyl)*trkLen
		}
		return g.BaseOff + int64(2*g.NrCyls-cyl-1)*trkLen
	default: // Interleaved
		trackIdx = int64(cyl*g.NrSides + side)
		return g.BaseOff + trackIdx*trkLen
	}
}
