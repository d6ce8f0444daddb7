package mfm

import "testing"

// CRC("123456789") == 0x29B1 is the canonical CRC16-CCITT self-test
// named in spec §9.
func TestCRC16CCITTVector(t *testing.T) {
	got := CRC16CCITT([]byte("123456789"))
	if got != 0x29B1 {
		t.Errorf("CRC16CCITT(%q) = 0x%04X, want 0x29B1", "123456789", got)
	}
}

func TestCRC16ValidTrailerIsZero(t *testing.T) {
	payload := []byte{0xA1, 0xA1, 0xA1, 0xFB, 1, 2, 3, 4, 5}
	crc := CRC16CCITT(payload)
	withCRC := append(append([]byte{}, payload...), byte(crc>>8), byte(crc))
	if final := CRC16CCITT(withCRC); final != 0 {
		t.Errorf("CRC16CCITT with trailing CRC = 0x%04X, want 0", final)
	}
}
