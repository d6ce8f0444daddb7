package track

import (
	"fmt"

	"github.com/hxcfe/floppytrack/mfm"
)

// DecodePos enumerates the phase sequence of one revolution, matching
// spec §4.5's monotonic counter: 0 is GAP4A/IAM, 1..4*nr_sectors cover
// the four phases per sector (IDAM, DAM_pre, DATA, DAM_post) in
// rotational order, and 4*nr_sectors+1 is GAP4.
type DecodePos int

// Phase identifies which of the four per-sector regions a DecodePos
// value within the sector range refers to.
type Phase int

const (
	PhaseIDAM Phase = iota
	PhaseDAMPre
	PhaseData
	PhaseDAMPost
)

// SectorAndPhase decodes a DecodePos in the sector range (1 through
// 4*nr_sectors) into a rotational sector index and phase.
func SectorAndPhase(pos DecodePos, nrSectors int) (sectorIdx int, phase Phase, ok bool) {
	if pos < 1 || int(pos) > 4*nrSectors {
		return 0, 0, false
	}
	zero := int(pos) - 1
	return zero / 4, Phase(zero % 4), true
}

// PhaseOffset records the bit offset at which a given DecodePos value
// begins, built while encoding a track so CalcStartPos can invert a
// byte/bit seek back into (decode_pos, phase-relative offset) per spec
// §4.5 ("calc_start_pos").
type PhaseOffset struct {
	Pos       DecodePos
	BitOffset int
}

// FetchSector supplies one sector's payload during track encoding
// (spec's img_fetch_data, generalized away from a concrete file
// handle so the encoder can be tested without one).
type FetchSector func(id int) ([]byte, error)

// EncodedTrack is one revolution's bitcell stream plus the phase-index
// needed to seek into it.
type EncodedTrack struct {
	Writer  *mfm.WordWriter
	Offsets []PhaseOffset
}

// EncodeTrack synthesizes the full bitcell stream for one revolution
// in fixed phase order: GAP4A → (IAM) → (IDAM → DAM_pre → DATA →
// DAM_post)·nr_sectors → GAP4 (spec §5 "ordering guarantees").
//
// Unlike the original firmware, which emits this incrementally across
// repeated non-blocking read_track calls bounded by read_bc's free
// space, this builds the whole revolution eagerly; the bounded,
// resumable-per-call discipline the spec describes is instead realized
// at the ring-buffer layer, whose Write already returns a short count
// when space runs out (ringbuf.Ring.Write). PhaseOffset bookkeeping is
// still produced so mid-track seeks (CalcStartPos) work the same way.
func EncodeTrack(g Geometry, secMap []int, cyl, head int, fetch FetchSector) (*EncodedTrack, error) {
	mode := mfm.SyncMFM
	if g.FM {
		mode = mfm.SyncFM
	}
	w := mfm.NewWordWriter(mode)
	et := &EncodedTrack{Writer: w}

	record := func(pos DecodePos) {
		et.Offsets = append(et.Offsets, PhaseOffset{Pos: pos, BitOffset: w.Len()})
	}

	// GAP4A / IAM (decode_pos == 0).
	record(0)
	if g.FM {
		w.WriteGapByte(g.Gap4a)
	} else {
		w.WriteGapByte(g.Gap4a)
		if g.HasIAM {
			w.WriteSyncFill(mfmGapSync)
			if mode == mfm.SyncMFM {
				w.WriteSyncWord(mfm.MFMSyncC2, 0)
				w.WriteSyncWord(mfm.MFMSyncC2, 0)
				w.WriteSyncWord(mfm.MFMSyncC2, 0)
				w.WriteByte(mfm.TagIAM)
			}
			w.WriteGapByte(mfmGap1)
		}
	}

	for i := 0; i < g.NrSectors; i++ {
		id := secMap[i]

		// IDAM.
		record(DecodePos(1 + 4*i + int(PhaseIDAM)))
		writeIDAM(w, g, cyl, head, id)

		// DAM pre (sync run).
		record(DecodePos(1 + 4*i + int(PhaseDAMPre)))
		writeDAMPre(w, g, mode)

		// DATA.
		record(DecodePos(1 + 4*i + int(PhaseData)))
		payload, err := fetch(id)
		if err != nil {
			return nil, fmt.Errorf("track: fetch sector %d: %w", id, err)
		}
		if len(payload) != g.SecSize() {
			return nil, fmt.Errorf("track: sector %d payload is %d bytes, want %d", id, len(payload), g.SecSize())
		}
		dataCRC := crcDAMHeader(mode)
		dataCRC = mfm.UpdateCRC16Bytes(dataCRC, payload)
		w.WriteBytes(payload)
		w.WriteByte(byte(dataCRC >> 8))
		w.WriteByte(byte(dataCRC))

		// DAM post (gap3 + post-CRC syncs).
		record(DecodePos(1 + 4*i + int(PhaseDAMPost)))
		w.WriteGapByte(g.Gap3)
		for j := 0; j < g.PostCRCSyncs; j++ {
			w.WriteGapByte(1)
		}
	}

	// GAP4.
	record(DecodePos(4*g.NrSectors + 1))
	w.WriteGapByte(g.Gap4)

	return et, nil
}

// writeIDAM emits one IDAM record: sync run, address mark, then the
// four-byte cyl/head/sector/size-code identifier and its CRC16,
// big-endian (spec §4.5: "CRC ... seeded at 0xFFFF for the IDAM (over
// A1 A1 A1 FE cyl hd sec sec_no)"), followed by gap2 and, for MFM, the
// post-CRC sync bytes, so the record fills Geometry.IdamSz exactly.
func writeIDAM(w *mfm.WordWriter, g Geometry, cyl, head, sectorID int) uint16 {
	if g.FM {
		w.WriteSyncFill(fmGapSync)
	} else {
		syncFill := mfmGapSync
		if g.Gap3 < syncFill {
			syncFill = g.Gap3
		}
		w.WriteSyncFill(syncFill)
	}
	var crc uint16
	if g.FM {
		w.WriteSyncWord(mfm.EncodeFMSync(mfm.TagIDAM, mfm.FMAddressMarkClock()), 0)
		crc = mfm.UpdateCRC16(mfm.CRC16InitialValue(), mfm.TagIDAM)
	} else {
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteByte(mfm.TagIDAM)
		crc = mfm.CRC16InitialValue()
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, 0xA1)
		crc = mfm.UpdateCRC16(crc, mfm.TagIDAM)
	}

	chrn := [4]byte{byte(cyl), byte(head), byte(sectorID), byte(g.SecSizeCode)}
	for _, b := range chrn {
		w.WriteByte(b)
		crc = mfm.UpdateCRC16(crc, b)
	}
	w.WriteByte(byte(crc >> 8))
	w.WriteByte(byte(crc))
	w.WriteGapByte(g.Gap2)
	if !g.FM {
		for j := 0; j < g.PostCRCSyncs; j++ {
			w.WriteGapByte(1)
		}
	}
	return crc
}

// writeDAMPre emits the sync run preceding a DAM (A1A1A1FB for MFM,
// a single clock-violated FB for FM).
func writeDAMPre(w *mfm.WordWriter, g Geometry, mode mfm.SyncMode) {
	if mode == mfm.SyncFM {
		w.WriteSyncFill(fmGapSync)
		w.WriteSyncWord(mfm.EncodeFMSync(mfm.TagDAM, mfm.FMAddressMarkClock()), 0)
	} else {
		w.WriteSyncFill(mfmGapSync)
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteSyncWord(mfm.MFMSyncA1, 1)
		w.WriteByte(mfm.TagDAM)
	}
}

// crcDAMHeader returns the CRC16 accumulator after folding in the DAM
// sync header, seeding the data-field CRC (spec §4.5: "restarted for
// the DAM (over A1 A1 A1 FB <data>)").
func crcDAMHeader(mode mfm.SyncMode) uint16 {
	crc := mfm.CRC16InitialValue()
	if mode == mfm.SyncFM {
		return mfm.UpdateCRC16(crc, mfm.TagDAM)
	}
	crc = mfm.UpdateCRC16(crc, 0xA1)
	crc = mfm.UpdateCRC16(crc, 0xA1)
	crc = mfm.UpdateCRC16(crc, 0xA1)
	return mfm.UpdateCRC16(crc, mfm.TagDAM)
}

// CalcStartPos inverts the phase-offset table built by EncodeTrack,
// returning the decode_pos whose phase contains bitOffset (spec §4.5
// "calc_start_pos", seeking into a partial track).
func CalcStartPos(offsets []PhaseOffset, bitOffset int) DecodePos {
	pos := DecodePos(0)
	for _, o := range offsets {
		if o.BitOffset > bitOffset {
			break
		}
		pos = o.Pos
	}
	return pos
}
