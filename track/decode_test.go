package track

import (
	"testing"
)

func TestDecodeWriteTrackFallsBackToInferredSectorWithoutIDAM(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)

	// Encode a normal track, then drop everything up to (and including)
	// the first sector's IDAM so the decoder sees a DAM with no
	// preceding IDAM, like a format operation that only writes data
	// fields into an already-formatted track.
	et, err := EncodeTrack(g, secMap, 0, 0, fetchZeroed(g.SecSize()))
	if err != nil {
		t.Fatalf("EncodeTrack failed: %v", err)
	}
	damPreOffset := -1
	for _, o := range et.Offsets {
		if o.Pos == DecodePos(1+4*0+int(PhaseDAMPre)) {
			damPreOffset = o.BitOffset
			break
		}
	}
	if damPreOffset < 0 {
		t.Fatal("could not locate first sector's DAM_pre offset")
	}
	truncated := et.Writer.Bytes()[damPreOffset/8:]

	called := false
	inferred := func() (int, bool) {
		called = true
		return secMap[0], true
	}

	sectors, corruptions := DecodeWriteTrack(truncated, g.FM, g.SecSize(), g.Base, inferred)
	if len(corruptions) != 0 {
		t.Fatalf("unexpected corruptions: %+v", corruptions)
	}
	if !called {
		t.Fatal("expected inferredSector callback to be invoked")
	}
	if len(sectors) != g.NrSectors || !sectors[0].Inferred || sectors[0].SectorID != secMap[0] {
		t.Fatalf("got %+v, want %d sectors, the first inferred as sector %d", sectors, g.NrSectors, secMap[0])
	}
}

func TestDecodeWriteTrackRejectsCorruptDAM(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)

	et, err := EncodeTrack(g, secMap, 0, 0, fetchZeroed(g.SecSize()))
	if err != nil {
		t.Fatalf("EncodeTrack failed: %v", err)
	}

	raw := append([]byte(nil), et.Writer.Bytes()...)
	// Flip a byte well inside the first sector's data field to break its CRC.
	dataOffset := -1
	for _, o := range et.Offsets {
		if o.Pos == DecodePos(1+4*0+int(PhaseData)) {
			dataOffset = o.BitOffset / 8
			break
		}
	}
	if dataOffset < 0 || dataOffset+4 >= len(raw) {
		t.Fatal("could not locate first sector's data offset")
	}
	raw[dataOffset+2] ^= 0xFF

	_, corruptions := DecodeWriteTrack(raw, g.FM, g.SecSize(), g.Base, nil)
	found := false
	for _, c := range corruptions {
		if c.Reason == "dam crc" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a dam crc corruption, got %+v", corruptions)
	}
}

func TestDecodeWriteTrackEmptyStreamYieldsNothing(t *testing.T) {
	sectors, corruptions := DecodeWriteTrack(nil, false, 512, 1, nil)
	if len(sectors) != 0 || len(corruptions) != 0 {
		t.Fatalf("expected no sectors/corruptions from an empty stream, got %v / %v", sectors, corruptions)
	}
}

func TestReadDAMBodyRejectsNonPositiveSecSize(t *testing.T) {
	g := testGeometry(t)
	secMap := BuildSecMap(g, 0, 0, 0)
	et, err := EncodeTrack(g, secMap, 0, 0, fetchZeroed(g.SecSize()))
	if err != nil {
		t.Fatalf("EncodeTrack failed: %v", err)
	}

	sectors, _ := DecodeWriteTrack(et.Writer.Bytes(), g.FM, 0, g.Base, nil)
	if len(sectors) != 0 {
		t.Fatalf("secSize=0 must not yield decoded sectors, got %+v", sectors)
	}
}
