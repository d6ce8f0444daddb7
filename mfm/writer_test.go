package mfm

import "testing"

func TestWordWriterMFMRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0xAA, 0x55, 0x42, 0xA5, 0x5A}
	w := NewWordWriter(SyncMFM)
	w.WriteBytes(data)

	if w.Len() != len(data)*16 {
		t.Fatalf("Len() = %d, want %d", w.Len(), len(data)*16)
	}

	r := NewBitReader(w.Bytes())
	for i, want := range data {
		got, err := r.ReadMFMByte()
		if err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		if got != want {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got, want)
		}
	}
}

func TestWordWriterFMRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0xAA, 0x55, 0x42}
	w := NewWordWriter(SyncFM)
	w.WriteBytes(data)

	r := NewBitReader(w.Bytes())
	for i, want := range data {
		got, err := r.ReadFMByte()
		if err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		if got != want {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got, want)
		}
	}
}

func TestWordWriterSyncWordThenData(t *testing.T) {
	w := NewWordWriter(SyncMFM)
	w.WriteSyncWord(MFMSyncA1, 1) // 0xA1 ends in ...001
	w.WriteByte(0xFE)

	// Skip past the raw sync word bits directly and decode the
	// following byte to confirm clock suppression carried over
	// correctly from WriteSyncWord.
	r := NewBitReader(w.Bytes())
	r.Reset(16)
	got, err := r.ReadMFMByte()
	if err != nil {
		t.Fatalf("ReadMFMByte: %v", err)
	}
	if got != 0xFE {
		t.Errorf("byte after sync = 0x%02X, want 0xFE", got)
	}
}

func TestWriteGapByte(t *testing.T) {
	w := NewWordWriter(SyncMFM)
	w.WriteGapByte(4)
	if w.Len() != 4*16 {
		t.Errorf("Len() = %d, want %d", w.Len(), 4*16)
	}

	wFM := NewWordWriter(SyncFM)
	wFM.WriteGapByte(4)
	r := NewBitReader(wFM.Bytes())
	for i := 0; i < 4; i++ {
		b, err := r.ReadFMByte()
		if err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		if b != 0xFF {
			t.Errorf("FM gap byte %d = 0x%02X, want 0xFF", i, b)
		}
	}
}
