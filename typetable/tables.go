package typetable

// Built-in type tables, one per host profile (spec §4.1 list: default,
// akai, casio, dec, ensoniq, fluke, kaypro, memotech, nascom, pc98,
// uknc). Entries are ordered most-common-geometry-first within each
// file size bracket, per spec §4.1's tie-breaking rule. Field values
// for the well-documented PC-DOS/IBM geometries are the textbook
// constants for those formats; the less common vendor tables below
// carry one or two representative entries each rather than an
// exhaustive vendor catalogue, since no vendor geometry dump was
// available to transcribe from (see DESIGN.md).

// defaultTable covers the standard PC/IBM MFM geometries plus the
// worked examples from spec §9 (1.44M, 720K).
var defaultTable = Table{
	// 1.44M: 80 cyl * 2 sides * 18 sec * 512B = 1,474,560 B
	{NrSecs: 18, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
	// 720K: 80 cyl * 2 sides * 9 sec * 512B = 737,280 B
	{NrSecs: 9, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
	// 1.2M: 80 cyl * 2 sides * 15 sec * 512B = 1,228,800 B
	{NrSecs: 15, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 360, Layout: Interleaved},
	// 360K: 40 cyl * 2 sides * 9 sec * 512B = 368,640 B
	{NrSecs: 9, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved},
	// 320K: 40 cyl * 2 sides * 8 sec * 512B = 327,680 B
	{NrSecs: 8, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved},
	// 180K: 40 cyl * 1 side * 9 sec * 512B = 184,320 B
	{NrSecs: 9, NrSides: 1, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved},
	// 160K: 40 cyl * 1 side * 8 sec * 512B = 163,840 B
	{NrSecs: 8, NrSides: 1, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved},
	// 2.88M: 80 cyl * 2 sides * 36 sec * 512B = 2,949,120 B
	{NrSecs: 36, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// akaiTable covers the Akai S-series sampler disk geometries: 80
// cylinders, 2 sides, 10 sectors of 1024 bytes, single-numbered
// (base 1), no skew.
var akaiTable = Table{
	{NrSecs: 10, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 3, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// casioTable covers the Casio FZ-series sampler disk geometry: 80
// cylinders, 2 sides, 8 sectors of 1024 bytes.
var casioTable = Table{
	{NrSecs: 8, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 3, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// decTable covers the DEC RX50-family geometry: 80 cylinders, 1 side,
// 10 sectors of 512 bytes, interleave 2 (the classic RX50 skip
// factor), inter-track numbering.
var decTable = Table{
	{NrSecs: 10, NrSides: 1, HasIAM: true, Gap3: 84, Interleave: 2, SecSizeCode: 2, Base: 1, InterTrackNumbering: true, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// ensoniqTable covers the Ensoniq EPS/ASR sampler disk geometry: 80
// cylinders, 2 sides, 10 sectors of 512 bytes.
var ensoniqTable = Table{
	{NrSecs: 10, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// flukeTable covers the Fluke test-instrument disk geometry: 80
// cylinders, 2 sides, 9 sectors of 512 bytes (standard PC-compatible
// layout used by Fluke's embedded DOS variant).
var flukeTable = Table{
	{NrSecs: 9, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// kayproTable covers the Kaypro CP/M 400K geometry: 40 cylinders, 2
// sides, 10 sectors of 512 bytes, inter-track numbering (head 1
// continues numbering from head 0), interleave 3.
var kayproTable = Table{
	{NrSecs: 10, NrSides: 2, HasIAM: true, Gap3: 30, Interleave: 3, SecSizeCode: 2, Base: 1, InterTrackNumbering: true, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved},
}

// memotechTable covers the Memotech MTX FDX 800K geometry: 80
// cylinders, 2 sides, 10 sectors of 512 bytes.
var memotechTable = Table{
	{NrSecs: 10, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// nascomTable covers the Nascom/Gemini NAS-SYS CP/M geometry: 80
// cylinders, 1 side, 10 sectors of 512 bytes, with cylinder-only
// skew. The entry sets SkewCylsOnly, and hostprofile.TweaksFor also
// forces it for the Nascom host.
var nascomTable = Table{
	{NrSecs: 10, NrSides: 1, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved, SkewCylsOnly: true},
}

// pc98Table covers the PC-9801 2HD default geometry: 77 cylinders, 2
// sides, 8 sectors of 1024 bytes, 360 RPM. Most PC98 media carry an
// FDI/HDM header and are resolved by the probers in §4.2 instead; this
// entry is the size-only fallback.
var pc98Table = Table{
	{NrSecs: 8, NrSides: 2, HasIAM: true, Gap3: 116, Interleave: 1, SecSizeCode: 3, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 360, Layout: Interleaved},
}

// ukncTable covers the DVK/UKNC floppy geometry: 80 cylinders, 2
// sides, 10 sectors of 512 bytes. The UKNC gap tweaks (gap_2=24,
// gap_4a=27, post_crc_syncs=1) are applied by hostprofile.TweaksFor
// rather than per-entry.
var ukncTable = Table{
	{NrSecs: 10, NrSides: 2, HasIAM: true, Gap3: 84, Interleave: 1, SecSizeCode: 2, Base: 1, Skew: 0, CylsClass: Cyls80, RPM: 300, Layout: Interleaved},
}

// stTable is derived from defaultTable with the IAM suppressed and
// skew=2 for 9-sector tracks (spec §4.2 "ST: derived from default
// 80-cyl table with IAM suppressed and skew=2 for 9-sector tracks").
var stTable = func() Table {
	var t Table
	for _, e := range defaultTable {
		if e.CylsClass != Cyls80 {
			continue
		}
		e.HasIAM = false
		if e.NrSecs == 9 {
			e.Skew = 2
		}
		t = append(t, e)
	}
	return t
}()

// STTable returns the ST-derived type table.
func STTable() Table { return stTable }

// opdTable covers Acorn DFS/OPD single-density FM disks (spec §4.2
// "OPD / DFS (SSD/DSD)"): 256-byte FM sectors, cylinder-only skew.
var opdTable = Table{
	{NrSecs: 10, NrSides: 1, HasIAM: false, Gap3: 21, Interleave: 1, SecSizeCode: 1, Base: 0, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved, SkewCylsOnly: true, FM: true},
	{NrSecs: 10, NrSides: 2, HasIAM: false, Gap3: 21, Interleave: 1, SecSizeCode: 1, Base: 0, Skew: 0, CylsClass: Cyls40, RPM: 300, Layout: Interleaved, SkewCylsOnly: true, FM: true},
}

// OPDTable returns the OPD/DFS type table.
func OPDTable() Table { return opdTable }
