// Package image implements the image handle (spec §3) and the
// per-format handler vtable that the matcher and header probers feed
// into (spec §6 "Handler vtable", §9 "Polymorphic handlers").
//
// Grounded structurally on the teacher's hfe/read.go and hfe/write.go
// format-dispatch switches, generalized from a hardcoded switch over
// file extension into a registered vtable keyed by Format, the way
// §9 describes ("a small vtable-per-format plus a tagged union for
// per-format state inside the image handle").
package image

import (
	"fmt"
	"io"

	"github.com/hxcfe/floppytrack/mfm"
	"github.com/hxcfe/floppytrack/ringbuf"
	"github.com/hxcfe/floppytrack/track"
)

// FileHandle is the engine's view of the backing media file (spec §6
// "File-handle contract"): positioned I/O only, plus a size query and
// an explicit sync point. *os.File provides everything except Size,
// which a thin wrapper supplies from Stat.
type FileHandle interface {
	io.ReaderAt
	io.WriterAt
	Size() (int64, error)
	Sync() error
}

// Format names one of the supported on-disk image formats.
type Format string

const (
	FormatIMG Format = "img"
	FormatHFE Format = "hfe"
)

// Handler is the capability set each format exposes (spec §6 "Handler
// vtable": `{open, setup_track, read_track, rdata_flux, write_track,
// extend?}`).
type Handler interface {
	// Open probes/matches fh and, on success, returns an Image ready
	// for track access.
	Open(fh FileHandle) (*Image, error)
}

// CorruptionReporter is implemented by TrackState backends that keep
// a log of sectors rejected during the most recent WriteTrack call
// (spec §7: "bitstream-corruption ... is logged and the bad sector
// skipped"). Not every format has a concept of per-sector corruption
// (HFE's pre-encoded tracks are stored verbatim), so this is queried
// via an optional type assertion rather than added to TrackState.
type CorruptionReporter interface {
	LastCorruptions() []track.Corruption
}

// Extender is implemented by handlers whose format can be pre-grown
// from empty (spec: "extend (optional) ... to pre-grow empty images
// (TRD, SSD, DSD)").
type Extender interface {
	Extend(fh FileHandle, nrCyls, nrSides int) error
}

var handlers = map[Format]Handler{}

// Register adds a format handler to the dispatch table.
func Register(f Format, h Handler) {
	handlers[f] = h
}

// Open dispatches to the handler registered for f.
func Open(f Format, fh FileHandle) (*Image, error) {
	h, ok := handlers[f]
	if !ok {
		return nil, fmt.Errorf("image: no handler registered for format %q", f)
	}
	return h.Open(fh)
}

// TrackState is the per-format tagged union member of an Image (spec
// §3: "a format-specific block (IMG or HFE, mutually exclusive)").
// An opened Image holds exactly one implementation: *imgState for the
// IMG formats or *hfeState for HFE.
type TrackState interface {
	// SetupTrack positions the state on (cyl, side), the spec's
	// cur_track = cyl*2+side.
	SetupTrack(cyl, side int) error
	// ReadTrack produces one full revolution's bitcell/flux stream
	// for the currently set-up track (spec §4.5/§4.6 read paths).
	ReadTrack() (bitcells []byte, err error)
	// RdataFlux converts the most recently read bitcells into flux
	// intervals plus the track length in ticks (spec §4.6
	// "hfe_rdata_flux"; §4.5's MFM/FM encoder serves the IMG side).
	RdataFlux(bitcells []byte) (intervals []uint32, tracklenTicks uint32)
	// WriteTrack decodes or stores newly-written bitcells back onto
	// the track (spec §4.5 "Write path" / §4.6 "Write").
	WriteTrack(bitcells []byte) error
}

// Image is the engine's open-image handle (spec §3 "Image handle").
type Image struct {
	fh FileHandle

	NrCyls  int
	NrSides int

	CurCyl  int
	CurSide int

	SyncMode mfm.SyncMode

	State TrackState

	// Ring buffers connecting the engine to the flux pump (spec §3,
	// §5). Sized generously enough for one HFE batch or one MFM
	// sector plus gaps; a real mount would size these from the
	// resolved geometry, but a fixed upper bound keeps Open simple
	// and matches the "pre-sized region... sized to accommodate the
	// largest legal sector plus HFE batch" resource policy (§5).
	ReadData  *ringbuf.Ring
	ReadBC    *ringbuf.Ring
	WriteData *ringbuf.Ring
	WriteBC   *ringbuf.Ring

	WriteDescs ringbuf.WriteDescQueue
}

// defaultRingCapacity covers the largest sector this engine supports
// (128<<6 = 8192 bytes) plus slack for gap regions and HFE's 8x512
// batch window.
const defaultRingCapacity = 16384

// NewImage allocates an Image's ring buffers and binds it to fh. Used
// by format handlers once geometry/track-LUT parsing has succeeded.
func NewImage(fh FileHandle, nrCyls, nrSides int) *Image {
	return &Image{
		fh:        fh,
		NrCyls:    nrCyls,
		NrSides:   nrSides,
		ReadData:  ringbuf.New(defaultRingCapacity),
		ReadBC:    ringbuf.New(defaultRingCapacity),
		WriteData: ringbuf.New(defaultRingCapacity),
		WriteBC:   ringbuf.New(defaultRingCapacity),
	}
}

// SetupTrack selects (cyl, side) as the current track, resetting all
// four ring buffers (spec §5 "Ring buffers are reset at track
// change").
func (img *Image) SetupTrack(cyl, side int) error {
	if cyl < 0 || cyl >= img.NrCyls {
		return fmt.Errorf("image: cylinder %d out of range [0,%d)", cyl, img.NrCyls)
	}
	if side < 0 || side >= img.NrSides {
		return fmt.Errorf("image: side %d out of range [0,%d)", side, img.NrSides)
	}
	if err := img.State.SetupTrack(cyl, side); err != nil {
		return err
	}
	img.CurCyl, img.CurSide = cyl, side
	img.ReadData.Reset()
	img.ReadBC.Reset()
	img.WriteData.Reset()
	img.WriteBC.Reset()
	img.WriteDescs.Reset()
	return nil
}

// ReadTrack reads the current track's bitcells and generates one
// revolution of flux intervals through it (the read_track and
// rdata_flux entry points, composed since this engine synthesizes a
// full revolution eagerly rather than emitting phase-by-phase into a
// bounded ring; see track.EncodeTrack's doc comment for the same
// adaptation rationale).
func (img *Image) ReadTrack() (intervals []uint32, tracklenTicks uint32, err error) {
	bits, err := img.State.ReadTrack()
	if err != nil {
		return nil, 0, err
	}
	intervals, tracklenTicks = img.State.RdataFlux(bits)
	return intervals, tracklenTicks, nil
}

// WriteTrack hands decoded bitcells for the current track to the
// format state for storage.
func (img *Image) WriteTrack(bitcells []byte) error {
	if err := img.State.WriteTrack(bitcells); err != nil {
		return err
	}
	return img.fh.Sync()
}
