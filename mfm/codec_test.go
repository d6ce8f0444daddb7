package mfm

import "testing"

func TestEncodeDecodeMFMByteRoundTrip(t *testing.T) {
	for _, b := range []byte{0x00, 0xFF, 0xAA, 0x55, 0x42, 0x0F, 0xF0} {
		word, _ := EncodeMFMByte(b, 0)
		got := DecodeMFMWord(word)
		if got != b {
			t.Errorf("EncodeMFMByte(0x%02X) round trip = 0x%02X", b, got)
		}
	}
}

func TestEncodeMFMByteClockSuppression(t *testing.T) {
	// 0x00 starts with data bit 0, so with prevLowBit=1 (previous byte
	// ended in a 1 data bit) the leading clock bit must be suppressed
	// to avoid two consecutive 1 clock bits violating MFM run-length
	// rules (spec §4.5).
	withCarry, _ := EncodeMFMByte(0x00, 1)
	withoutCarry, _ := EncodeMFMByte(0x00, 0)
	if withCarry&(1<<15) != 0 {
		t.Errorf("clock bit 15 not suppressed when prevLowBit=1: 0x%04X", withCarry)
	}
	if withoutCarry&(1<<15) == 0 {
		t.Errorf("clock bit 15 unexpectedly suppressed when prevLowBit=0: 0x%04X", withoutCarry)
	}
}

func TestEncodeMFMByteCarry(t *testing.T) {
	_, carry := EncodeMFMByte(0x01, 0)
	if carry != 1 {
		t.Errorf("carry = %d, want 1 for byte ending in bit 1", carry)
	}
	_, carry = EncodeMFMByte(0x02, 0)
	if carry != 0 {
		t.Errorf("carry = %d, want 0 for byte ending in bit 0", carry)
	}
}

func TestEncodeDecodeFMByteRoundTrip(t *testing.T) {
	for _, b := range []byte{0x00, 0xFF, 0xAA, 0x55, 0xFE, 0xFB} {
		word := EncodeFMByte(b)
		if got := DecodeFMWord(word); got != b {
			t.Errorf("EncodeFMByte(0x%02X) round trip = 0x%02X", b, got)
		}
	}
}

func TestEncodeFMByteClockAllOnes(t *testing.T) {
	word := EncodeFMByte(0x00)
	if word != 0xAAAA {
		t.Errorf("EncodeFMByte(0x00) = 0x%04X, want 0xAAAA (all clock bits set)", word)
	}
}

func TestEncodeFMSyncDataAndClock(t *testing.T) {
	word := EncodeFMSync(TagIDAM, FMAddressMarkClock())
	if got := DecodeFMWord(word); got != TagIDAM {
		t.Errorf("EncodeFMSync data bits decode to 0x%02X, want 0x%02X", got, TagIDAM)
	}
	var clockBits byte
	for j := 0; j < 8; j++ {
		c := (word >> uint(15-2*j)) & 1
		clockBits = (clockBits << 1) | byte(c)
	}
	if clockBits != FMAddressMarkClock() {
		t.Errorf("EncodeFMSync clock bits = 0x%02X, want 0x%02X", clockBits, FMAddressMarkClock())
	}
}

func TestMFMSyncWordsKnownConstants(t *testing.T) {
	if MFMSyncA1 != 0x4489 {
		t.Errorf("MFMSyncA1 = 0x%04X, want 0x4489", MFMSyncA1)
	}
	if MFMSyncC2 != 0x5224 {
		t.Errorf("MFMSyncC2 = 0x%04X, want 0x5224", MFMSyncC2)
	}
}
