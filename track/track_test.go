package track

import (
	"errors"
	"testing"

	"github.com/hxcfe/floppytrack/hostprofile"
)

func testGeometry(t *testing.T) Geometry {
	t.Helper()
	e := entry144M()
	e.NrSecs = 4
	return BuildGeometry(e, 80, hostprofile.Tweaks{}, 0)
}

func fetchZeroed(secSize int) FetchSector {
	return func(id int) ([]byte, error) {
		buf := make([]byte, secSize)
		for i := range buf {
			buf[i] = byte(id)
		}
		return buf, nil
	}
}

func TestEncodeTrackProducesAllPhases(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)

	et, err := EncodeTrack(g, secMap, 0, 0, fetchZeroed(g.SecSize()))
	if err != nil {
		t.Fatalf("EncodeTrack failed: %v", err)
	}

	wantPhases := 1 + 4*g.NrSectors + 1
	if len(et.Offsets) != wantPhases {
		t.Fatalf("got %d phase offsets, want %d", len(et.Offsets), wantPhases)
	}
	for i := 1; i < len(et.Offsets); i++ {
		if et.Offsets[i].BitOffset < et.Offsets[i-1].BitOffset {
			t.Fatalf("offsets not monotonic at %d: %+v", i, et.Offsets)
		}
	}
	if et.Writer.Len() == 0 {
		t.Error("expected nonzero encoded track length")
	}
}

func TestEncodeTrackPropagatesFetchError(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)
	boom := errors.New("boom")

	_, err := EncodeTrack(g, secMap, 0, 0, func(id int) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestEncodeTrackRejectsWrongSizedPayload(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)

	_, err := EncodeTrack(g, secMap, 0, 0, func(id int) ([]byte, error) {
		return make([]byte, g.SecSize()-1), nil
	})
	if err == nil {
		t.Fatal("expected error for undersized sector payload")
	}
}

func TestCalcStartPosFindsEnclosingPhase(t *testing.T) {
	offsets := []PhaseOffset{
		{Pos: 0, BitOffset: 0},
		{Pos: 1, BitOffset: 100},
		{Pos: 2, BitOffset: 250},
		{Pos: 3, BitOffset: 400},
	}

	if got := CalcStartPos(offsets, 0); got != 0 {
		t.Errorf("at 0: got %v, want 0", got)
	}
	if got := CalcStartPos(offsets, 150); got != 1 {
		t.Errorf("at 150: got %v, want 1", got)
	}
	if got := CalcStartPos(offsets, 399); got != 2 {
		t.Errorf("at 399: got %v, want 2", got)
	}
	if got := CalcStartPos(offsets, 1000); got != 3 {
		t.Errorf("past end: got %v, want 3", got)
	}
}

func TestSectorAndPhase(t *testing.T) {
	const nrSectors = 4

	if _, _, ok := SectorAndPhase(0, nrSectors); ok {
		t.Error("position 0 (GAP4A/IAM) should not resolve to a sector")
	}
	sec, phase, ok := SectorAndPhase(1, nrSectors)
	if !ok || sec != 0 || phase != PhaseIDAM {
		t.Errorf("pos 1: got sec=%d phase=%v ok=%v, want sec=0 phase=IDAM", sec, phase, ok)
	}
	sec, phase, ok = SectorAndPhase(4*nrSectors, nrSectors)
	if !ok || sec != nrSectors-1 || phase != PhaseDAMPost {
		t.Errorf("last pos: got sec=%d phase=%v ok=%v", sec, phase, ok)
	}
	if _, _, ok := SectorAndPhase(4*nrSectors+1, nrSectors); ok {
		t.Error("GAP4 position should not resolve to a sector")
	}
}

func TestEncodeTrackRoundTripsThroughDecodeWriteTrack(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)

	et, err := EncodeTrack(g, secMap, 2, 1, fetchZeroed(g.SecSize()))
	if err != nil {
		t.Fatalf("EncodeTrack failed: %v", err)
	}

	sectors, corruptions := DecodeWriteTrack(et.Writer.Bytes(), g.FM, g.SecSize(), g.Base, nil)
	if len(corruptions) != 0 {
		t.Fatalf("unexpected corruptions: %+v", corruptions)
	}
	if len(sectors) != g.NrSectors {
		t.Fatalf("got %d decoded sectors, want %d", len(sectors), g.NrSectors)
	}

	bySector := map[int][]byte{}
	for _, s := range sectors {
		bySector[s.SectorID] = s.Data
	}
	for _, id := range secMap {
		data, ok := bySector[id]
		if !ok {
			t.Fatalf("sector %d missing from decode", id)
		}
		for _, b := range data {
			if b != byte(id) {
				t.Fatalf("sector %d payload corrupted: %v", id, data)
			}
		}
	}
}
