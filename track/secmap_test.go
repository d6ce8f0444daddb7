package track

import (
	"sort"
	"testing"

	"github.com/hxcfe/floppytrack/hostprofile"
	"github.com/hxcfe/floppytrack/typetable"
)

func TestBuildSecMapNoInterleaveIsIdentity(t *testing.T) {
	e := entry144M()
	e.Interleave = 1
	e.Skew = 0
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)

	secMap := BuildSecMap(g, 0, 0, 0)
	for i, id := range secMap {
		if id != i+1 {
			t.Errorf("secMap[%d] = %d, want %d", i, id, i+1)
		}
	}
}

func TestBuildSecMapIsPermutation(t *testing.T) {
	e := entry144M()
	e.Interleave = 2
	e.Skew = 3
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)

	secMap := BuildSecMap(g, 5, 1, 11)
	got := append([]int(nil), secMap...)
	sort.Ints(got)
	for i, id := range got {
		if id != i+g.Base {
			t.Fatalf("secMap is not a permutation of [%d, %d): got %v", g.Base, g.Base+g.NrSectors, secMap)
		}
	}
}

func TestBuildSecMapSkewAdvancesStartSlot(t *testing.T) {
	e := entry144M()
	e.Interleave = 1
	e.Skew = 1
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)

	track0 := BuildSecMap(g, 0, 0, 0)
	track1 := BuildSecMap(g, 1, 0, 1)
	if track0[0] == track1[0] {
		t.Error("skewed tracks should not start on the same sector")
	}
}

func TestTrackOffsetInterleaved(t *testing.T) {
	e := entry144M()
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)
	trkLen := int64(g.NrSectors) * int64(g.SecSize())

	if off := TrackOffset(g, 0, 0); off != 0 {
		t.Errorf("cyl0/side0 offset = %d, want 0", off)
	}
	if off := TrackOffset(g, 0, 1); off != trkLen {
		t.Errorf("cyl0/side1 offset = %d, want %d", off, trkLen)
	}
	if off := TrackOffset(g, 1, 0); off != 2*trkLen {
		t.Errorf("cyl1/side0 offset = %d, want %d", off, 2*trkLen)
	}
}

func TestTrackOffsetInterleavedSwapSides(t *testing.T) {
	e := entry144M()
	e.Layout = typetable.InterleavedSwapSides
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)
	trkLen := int64(g.NrSectors) * int64(g.SecSize())

	if off := TrackOffset(g, 0, 0); off != trkLen {
		t.Errorf("swapped cyl0/side0 offset = %d, want %d", off, trkLen)
	}
	if off := TrackOffset(g, 0, 1); off != 0 {
		t.Errorf("swapped cyl0/side1 offset = %d, want 0", off)
	}
}

func TestTrackOffsetSequentialReverseSide1(t *testing.T) {
	e := entry144M()
	e.Layout = typetable.SequentialReverseSide1
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)
	trkLen := int64(g.NrSectors) * int64(g.SecSize())

	if off := TrackOffset(g, 0, 0); off != 0 {
		t.Errorf("side0 cyl0 offset = %d, want 0", off)
	}
	if off := TrackOffset(g, 0, 1); off != int64(2*g.NrCyls-1)*trkLen {
		t.Errorf("side1 cyl0 offset = %d, want last track", off)
	}
	if off := TrackOffset(g, g.NrCyls-1, 1); off != int64(g.NrCyls)*trkLen {
		t.Errorf("side1 last cyl offset = %d, want %d", off, int64(g.NrCyls)*trkLen)
	}
}

func TestTrackOffsetHonorsBaseOff(t *testing.T) {
	e := entry144M()
	g := BuildGeometry(e, 80, hostprofile.Tweaks{}, 512)
	if off := TrackOffset(g, 0, 0); off != 512 {
		t.Errorf("offset = %d, want base offset 512", off)
	}
}
