package track

import "github.com/hxcfe/floppytrack/mfm"

// DecodedSector is one sector recovered from an incoming write
// bitstream (spec §4.5 "write path").
type DecodedSector struct {
	SectorID int
	Data     []byte
	Inferred bool // write_sector came from the write-start-tick fallback, not an IDAM
}

// Corruption records a rejected sector, for logging (spec §4.5:
// "corruption ... is logged and the bad sector silently skipped").
type Corruption struct {
	Reason   string
	SectorID int
}

// DecodeWriteTrack scans a captured bitcell stream for IDAM/DAM pairs
// and returns every sector whose CRC validated, following spec §4.5's
// write path:
//  1. scan for the MFM/FM address-mark sync,
//  2. on 0xFE (IDAM), validate the CHRN+CRC and remember write_sector,
//  3. on 0xFB (DAM), validate the data+CRC and, if write_sector is
//     known, emit the sector,
//  4. if a DAM arrives with no preceding IDAM, fall back to
//     inferredSector (the caller's write-start-tick-derived sector,
//     via sec_map) so format operations without ID fields still land.
//
// secSize is the geometry's sector payload size — the DAM body has no
// self-declared length on the wire, unlike the IDAM's size code.
func DecodeWriteTrack(data []byte, fm bool, secSize, secBase int, inferredSector func() (int, bool)) ([]DecodedSector, []Corruption) {
	r := mfm.NewBitReader(data)
	var sectors []DecodedSector
	var corruptions []Corruption

	const (
		secUnknown = -1
		secIgnore  = -2
	)
	writeSector := secUnknown

	fmWantAny := map[byte]byte{mfm.FMAddressMarkClock(): mfm.TagIDAM}

	for {
		var tag byte
		var err error
		if fm {
			// IDAM and DAM share one violating clock, so the mark found by
			// its clock is re-read as data to tell 0xFE from 0xFB.
			if _, err = r.ScanFMSync(fmWantAny); err == nil {
				r.Reset(len(data)*8 - r.Remaining() - 16)
				tag, err = r.ReadFMByte()
			}
		} else {
			tag, err = r.ScanMFMSync(0x00A1A1A1)
		}
		if err != nil {
			break // end of captured stream
		}

		switch tag {
		case mfm.TagIDAM:
			chrn, crcOK, bodyOK := readIDAMBody(r, fm)
			if !bodyOK {
				continue
			}
			if !crcOK {
				corruptions = append(corruptions, Corruption{Reason: "idam crc"})
				writeSector = secIgnore
				continue
			}
			sec := int(chrn[2]) - secBase
			if sec < 0 {
				writeSector = secIgnore
				corruptions = append(corruptions, Corruption{Reason: "idam sector out of range", SectorID: sec})
				continue
			}
			writeSector = sec

		case mfm.TagDAM, mfm.TagDeletedDAM:
			secData, crcOK, bodyOK := readDAMBody(r, fm, tag, secSize)
			if !bodyOK {
				continue
			}
			if !crcOK {
				corruptions = append(corruptions, Corruption{Reason: "dam crc", SectorID: writeSector})
				writeSector = secUnknown
				continue
			}
			switch writeSector {
			case secIgnore:
				// Drop until the next valid IDAM re-locks write_sector.
			case secUnknown:
				if inferredSector != nil {
					if sec, ok := inferredSector(); ok {
						sectors = append(sectors, DecodedSector{SectorID: sec, Data: secData, Inferred: true})
					}
				}
			default:
				sectors = append(sectors, DecodedSector{SectorID: writeSector + secBase, Data: secData})
				writeSector = secUnknown
			}
		}
	}

	return sectors, corruptions
}

// readIDAMBody reads the CHRN + CRC16 following an IDAM tag and
// reports whether the CRC validated. bodyOK is false only if the
// stream ran out before the record could be read at all.
func readIDAMBody(r *mfm.BitReader, fm bool) (chrn [4]byte, crcOK bool, bodyOK bool) {
	crc := mfm.CRC16InitialValue()
	if !fm {
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
	}
	crc = mfm.UpdateCRC16(crc, mfm.TagIDAM)

	readByte := r.ReadMFMByte
	if fm {
		readByte = r.ReadFMByte
	}

	for i := 0; i < 4; i++ {
		b, err := readByte()
		if err != nil {
			return chrn, false, false
		}
		chrn[i] = b
		crc = mfm.UpdateCRC16(crc, b)
	}
	crcHi, err1 := readByte()
	crcLo, err2 := readByte()
	if err1 != nil || err2 != nil {
		return chrn, false, false
	}
	gotCRC := uint16(crcHi)<<8 | uint16(crcLo)
	return chrn, gotCRC == crc, true
}

// readDAMBody reads a data field of secSize bytes plus its trailing
// CRC16, reporting the bytes read and whether the CRC validated. tag is
// the data mark that introduced the field (normal or deleted DAM); it is
// part of the CRC.
func readDAMBody(r *mfm.BitReader, fm bool, tag byte, secSize int) (data []byte, crcOK bool, bodyOK bool) {
	if secSize <= 0 {
		return nil, false, false
	}
	crc := mfm.CRC16InitialValue()
	if !fm {
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
	}
	crc = mfm.UpdateCRC16(crc, tag)

	readByte := r.ReadMFMByte
	if fm {
		readByte = r.ReadFMByte
	}

	buf := make([]byte, secSize)
	for i := range buf {
		b, err := readByte()
		if err != nil {
			return nil, false, false
		}
		buf[i] = b
		crc = mfm.UpdateCRC16(crc, b)
	}
	crcHi, err1 := readByte()
	crcLo, err2 := readByte()
	if err1 != nil || err2 != nil {
		return nil, false, false
	}
	gotCRC := uint16(crcHi)<<8 | uint16(crcLo)
	return buf, gotCRC == crc, true
}
