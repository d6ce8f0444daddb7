package track

import (
	"testing"

	"github.com/hxcfe/floppytrack/hostprofile"
	"github.com/hxcfe/floppytrack/typetable"
)

func entry144M() typetable.Entry {
	return typetable.Entry{
		NrSecs: 18, NrSides: 2, HasIAM: true, Gap3: 84,
		Interleave: 1, SecSizeCode: 2, Base: 1,
		CylsClass: typetable.Cyls80, RPM: 300, Layout: typetable.Interleaved,
	}
}

func TestBuildGeometry144M(t *testing.T) {
	g := BuildGeometry(entry144M(), 80, hostprofile.Tweaks{}, 0)

	if !g.Valid() {
		t.Fatalf("geometry invalid: %+v", g)
	}
	if g.SecSize() != 512 {
		t.Errorf("SecSize = %d, want 512", g.SecSize())
	}
	if g.DataRate != 500 {
		t.Errorf("DataRate = %d, want 500 (1.44M is high-density)", g.DataRate)
	}
	if g.TracklenBC == 0 || g.TracklenBC%32 != 0 {
		t.Errorf("TracklenBC = %d, want nonzero multiple of 32", g.TracklenBC)
	}
	if g.TicksPerCell == 0 {
		t.Error("TicksPerCell must be nonzero")
	}
}

func TestBuildGeometry360K(t *testing.T) {
	e := typetable.Entry{
		NrSecs: 9, NrSides: 2, HasIAM: true, Gap3: 84,
		Interleave: 1, SecSizeCode: 2, Base: 1,
		CylsClass: typetable.Cyls40, RPM: 300, Layout: typetable.Interleaved,
	}
	g := BuildGeometry(e, 40, hostprofile.Tweaks{}, 0)

	if !g.Valid() {
		t.Fatalf("geometry invalid: %+v", g)
	}
	if g.DataRate != 250 {
		t.Errorf("DataRate = %d, want 250 (360K is double-density)", g.DataRate)
	}
}

func TestBuildGeometryAppliesTweaks(t *testing.T) {
	tweaks := hostprofile.Tweaks{Gap2: 24, Gap4a: 27, PostCRCSyncs: 1}
	g := BuildGeometry(entry144M(), 80, tweaks, 0)

	if g.Gap2 != 24 || g.Gap4a != 27 || g.PostCRCSyncs != 1 {
		t.Errorf("tweaks not applied: %+v", g)
	}
}

func TestBuildGeometryInterTrackNumbering(t *testing.T) {
	e := entry144M()
	e.InterTrackNumbering = true
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)

	if g.SecBase[0] != e.Base {
		t.Errorf("SecBase[0] = %d, want %d", g.SecBase[0], e.Base)
	}
	if g.SecBase[1] != e.Base+e.NrSecs {
		t.Errorf("SecBase[1] = %d, want %d", g.SecBase[1], e.Base+e.NrSecs)
	}
}

func TestBuildGeometryRejectsNothingForValidSectorCounts(t *testing.T) {
	for _, n := range []int{1, 18, MaxSecMap} {
		e := entry144M()
		e.NrSecs = n
		g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)
		if !g.Valid() {
			t.Errorf("NrSecs=%d should be valid", n)
		}
	}
}

func TestGeometryValidRejectsOutOfRangeSectorCount(t *testing.T) {
	g := Geometry{NrSides: 2, NrCyls: 80, NrSectors: MaxSecMap + 1}
	if g.Valid() {
		t.Error("expected invalid geometry for NrSectors beyond MaxSecMap")
	}
}

func TestGeometryValidRejectsBadSides(t *testing.T) {
	g := Geometry{NrSides: 3, NrCyls: 80, NrSectors: 18}
	if g.Valid() {
		t.Error("expected invalid geometry for NrSides=3")
	}
}
