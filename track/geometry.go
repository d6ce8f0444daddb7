// Package track implements the track-geometry builder, sector
// mapper, and per-track IMG state machine: the engine's core (spec
// §4.3-§4.5). Grounded on mfm.WordWriter/BitReader for the bitcell
// codec and on the teacher's VerifyTrackIBMPC scan-CRC-relock control
// flow (since superseded in-tree by this package's own decode.go) for
// the write-path decoder, generalized from a fixed IBM-PC 512-byte/
// 18-sector layout to the full parametric geometry.
package track

import (
	"github.com/hxcfe/floppytrack/clock"
	"github.com/hxcfe/floppytrack/hostprofile"
	"github.com/hxcfe/floppytrack/typetable"
)

// Standard IBM-format gap/sync constants (spec §4.3 steps 1-6). These
// are the well-known WD1772/uPD765 formatting constants, not values
// transcribed from the pack — no example repo carries an IBM gap
// table (see DESIGN.md).
const (
	mfmGapSync = 12
	mfmGap1    = 50
	fmGapSync  = 6
)

// gap3BySecSizeCodeMFM and gap3BySecSizeCodeFM are the class-constant
// gap3 defaults used when a type-table entry leaves Gap3 unset (spec
// §4.3 step 1: "gap_3 ... GAP3-by-sec-code").
var gap3BySecSizeCodeMFM = map[int]int{0: 32, 1: 42, 2: 84, 3: 116, 4: 150, 5: 180}
var gap3BySecSizeCodeFM = map[int]int{0: 7, 1: 21, 2: 48, 3: 84}

// MaxSecMap bounds sec_map length (spec §4.3 validation: "nr_sectors
// ∉ [1, MAX_SEC_MAP]").
const MaxSecMap = 64

// Geometry is the resolved per-track IMG block (spec §3 "IMG block").
type Geometry struct {
	SecSizeCode int
	NrSectors   int
	NrSides     int
	NrCyls      int
	Interleave  int
	Skew        int
	SkewCylsOnly bool
	HasIAM      bool
	InterTrackNumbering bool
	Base        int
	SecBase     [2]int
	Layout      typetable.Layout
	FM          bool

	Gap2, Gap3, Gap4, Gap4a int
	PostCRCSyncs            int

	IdxSz, IdamSz, DamSzPre, DamSzPost int

	DataRate uint32 // kHz
	RPM      int

	TracklenBC   uint32 // bitcells per revolution
	TicksPerCell uint32 // 1/16-tick units per bitcell
	WriteBCTicks uint32
	StkPerRev    uint32

	BaseOff int64
}

// SecSize returns the sector payload size in bytes.
func (g Geometry) SecSize() int {
	return 128 << uint(g.SecSizeCode)
}

// BuildGeometry resolves a full Geometry from a matched type-table
// entry plus host-profile tweaks and image dimensions (spec §4.3).
func BuildGeometry(e typetable.Entry, nrCyls int, tweaks hostprofile.Tweaks, baseOff int64) Geometry {
	g := Geometry{
		SecSizeCode:         e.SecSizeCode,
		NrSectors:           e.NrSecs,
		NrSides:             e.NrSides,
		NrCyls:              nrCyls,
		Interleave:          e.Interleave,
		Skew:                e.Skew,
		SkewCylsOnly:        e.SkewCylsOnly || tweaks.SkewCylsOnly,
		HasIAM:              e.HasIAM,
		InterTrackNumbering: e.InterTrackNumbering,
		Base:                e.Base,
		Layout:              e.Layout,
		FM:                  e.FM,
		Gap3:                e.Gap3,
		RPM:                 e.RPM,
		BaseOff:             baseOff,
	}

	g.SecBase[0] = g.Base
	if g.InterTrackNumbering {
		g.SecBase[1] = g.Base + g.NrSectors
	} else {
		g.SecBase[1] = g.Base
	}

	// Step 1: defaults.
	if g.RPM == 0 {
		g.RPM = 300
	}
	if g.Gap3 == 0 {
		if g.FM {
			g.Gap3 = gap3BySecSizeCodeFM[g.SecSizeCode]
		} else {
			g.Gap3 = gap3BySecSizeCodeMFM[g.SecSizeCode]
		}
	}
	if g.FM {
		g.Gap2 = 11
		g.Gap4a = 16
	} else {
		g.Gap2 = 22
		g.Gap4a = 80
	}
	if tweaks.Gap2 != 0 {
		g.Gap2 = tweaks.Gap2
	}
	if tweaks.Gap4a != 0 {
		g.Gap4a = tweaks.Gap4a
	}
	g.PostCRCSyncs = tweaks.PostCRCSyncs

	// Step 2: revolution timing.
	g.StkPerRev = clock.StkMs(200) * 300 / uint32(g.RPM)

	// Step 3: idx_sz.
	if g.FM {
		g.IdxSz = g.Gap4a
	} else {
		extra := 0
		if g.HasIAM {
			extra = mfmGapSync + 4 + mfmGap1
		}
		g.IdxSz = g.Gap4a + extra
	}

	// Step 4: idam_sz.
	if g.FM {
		g.IdamSz = fmGapSync + 5 + 2 + g.Gap2
	} else {
		idamGapSync := g.Gap3
		if mfmGapSync < idamGapSync {
			idamGapSync = mfmGapSync
		}
		g.IdamSz = idamGapSync + 8 + 2 + g.Gap2 + g.PostCRCSyncs
	}

	// Step 5: dam_sz_pre.
	if g.FM {
		g.DamSzPre = fmGapSync + 1
	} else {
		g.DamSzPre = mfmGapSync + 4
	}

	// Step 6: dam_sz_post.
	g.DamSzPost = 2 + g.Gap3 + g.PostCRCSyncs

	// Step 7: minimum track bitcells.
	encSecSz := g.IdamSz + g.DamSzPre + g.SecSize() + g.DamSzPost
	tracklen := uint32(encSecSz*g.NrSectors+g.IdxSz) * 16

	// Step 8: data-rate selection (MFM only; FM fixed at 250).
	if g.FM {
		g.DataRate = 250
	} else {
		base := uint32(50000 * 300 / g.RPM)
		i := uint32(2)
		for candidate := uint32(0); candidate < 3; candidate++ {
			if tracklen < (base<<candidate)+5000 {
				i = candidate
				break
			}
		}
		g.DataRate = 250 << i
	}

	// Step 9: standard tracklen_bc.
	tracklenBC := g.DataRate * 60000 / uint32(g.RPM)

	// Step 10: fit check, GAP4A drop, long-track extension.
	if tracklen > tracklenBC {
		withoutGap4A := tracklen - uint32(g.Gap4a)*16
		if withoutGap4A <= tracklenBC {
			tracklen = withoutGap4A
			g.IdxSz -= g.Gap4a
			g.Gap4a = 0
		} else {
			tracklenBC = tracklen + 100
		}
	}

	// Step 11: round up to a multiple of 32.
	if tracklenBC%32 != 0 {
		tracklenBC += 32 - tracklenBC%32
	}
	g.TracklenBC = tracklenBC

	// Step 12: derived timing.
	g.TicksPerCell = uint32(clock.StkSysclk(g.StkPerRev)) * 16 / tracklenBC
	g.Gap4 = int((tracklenBC - tracklen) / 16)
	g.WriteBCTicks = uint32(clock.SysclkMs(1)) / g.DataRate

	return g
}

// Valid reports whether the geometry satisfies spec §4.3's validation
// rule.
func (g Geometry) Valid() bool {
	if g.NrSides != 1 && g.NrSides != 2 {
		return false
	}
	if g.NrCyls < 1 || g.NrCyls > 254 {
		return false
	}
	if g.NrSectors < 1 || g.NrSectors > MaxSecMap {
		return false
	}
	return true
}
