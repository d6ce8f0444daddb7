package image

import (
	"fmt"

	"github.com/hxcfe/floppytrack/hfe"
	"github.com/hxcfe/floppytrack/mfm"
)

// HFEHandler implements Handler for pre-encoded HFE v1/v3 images
// (spec §4.6). Sync mode is always NONE: the track data is already
// bitcell-encoded on disk, so no codec runs on open or read.
type HFEHandler struct{}

func (HFEHandler) Open(fh FileHandle) (*Image, error) {
	eng, err := hfe.Open(fh, fh)
	if err != nil {
		return nil, err
	}
	img := NewImage(fh, int(eng.Header.NumberOfTrack), int(eng.Header.NumberOfSide))
	img.SyncMode = mfm.SyncNone
	img.State = &hfeState{eng: eng}
	return img, nil
}

// hfeState is the HFE format's TrackState implementation.
type hfeState struct {
	eng *hfe.Engine
	trk *hfe.Track
}

func (s *hfeState) SetupTrack(cyl, side int) error {
	trk, err := s.eng.SeekTrack(cyl, side)
	if err != nil {
		return err
	}
	s.trk = trk
	return nil
}

func (s *hfeState) ReadTrack() ([]byte, error) {
	if s.trk == nil {
		return nil, fmt.Errorf("image: hfe track not set up")
	}
	// HFE tracks are already decoded bitcells in Track.bits; the
	// intervening "read into read_data/read_bc" batching is folded
	// into Engine.SeekTrack, which reads the whole side eagerly rather
	// than in batch_secs chunks; see hfe.Track.GenerateRevolutionFlux's
	// doc comment for the
	// same eager-synthesis rationale used throughout this engine.
	return nil, nil
}

func (s *hfeState) RdataFlux(_ []byte) ([]uint32, uint32) {
	return s.trk.GenerateRevolutionFlux()
}

func (s *hfeState) WriteTrack(bitcells []byte) error {
	if s.trk == nil {
		return fmt.Errorf("image: hfe track not set up")
	}
	return s.trk.WriteBatch(bitcells)
}

// IndexPulses exposes the most recently generated track's index-pulse
// timestamps and version counter, for a caller (e.g. cmd/fdctl) that
// wants to inspect HFE-specific state the generic TrackState interface
// doesn't carry.
func (s *hfeState) IndexPulses() ([]uint32, uint32) {
	if s.trk == nil {
		return nil, 0
	}
	return s.trk.IndexPulses(), s.trk.Version()
}
