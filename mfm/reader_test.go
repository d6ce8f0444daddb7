package mfm

import "testing"

func TestScanMFMSyncFindsIDAM(t *testing.T) {
	w := NewWordWriter(SyncMFM)
	w.WriteGapByte(4)
	w.WriteSyncFill(12)
	w.WriteSyncWord(MFMSyncA1, 1)
	w.WriteSyncWord(MFMSyncA1, 1)
	w.WriteSyncWord(MFMSyncA1, 1)
	w.WriteByte(0xFE) // IDAM tag

	r := NewBitReader(w.Bytes())
	tag, err := r.ScanMFMSync(0x00A1A1A1)
	if err != nil {
		t.Fatalf("ScanMFMSync: %v", err)
	}
	if tag != 0xFE {
		t.Errorf("tag = 0x%02X, want 0xFE", tag)
	}
}

func TestScanFMSyncFindsIDAM(t *testing.T) {
	w := NewWordWriter(SyncFM)
	w.WriteGapByte(4)
	w.appendWord(EncodeFMSync(TagIDAM, FMAddressMarkClock()))

	wantClocks := map[byte]byte{
		FMAddressMarkClock(): TagIDAM,
		FMIndexMarkClock():   TagIAM,
	}

	r := NewBitReader(w.Bytes())
	tag, err := r.ScanFMSync(wantClocks)
	if err != nil {
		t.Fatalf("ScanFMSync: %v", err)
	}
	if tag != TagIDAM {
		t.Errorf("tag = 0x%02X, want 0x%02X", tag, TagIDAM)
	}
}

func TestBitReaderRemaining(t *testing.T) {
	r := NewBitReader([]byte{0xFF, 0xFF})
	if r.Remaining() != 16 {
		t.Fatalf("Remaining() = %d, want 16", r.Remaining())
	}
	r.ReadHalfBit()
	if r.Remaining() != 15 {
		t.Errorf("Remaining() = %d, want 15", r.Remaining())
	}
}
