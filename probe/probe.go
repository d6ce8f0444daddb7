// Package probe implements the format-specific header probers that
// read a file's leading bytes to resolve or override geometry before
// delegating to the track-geometry builder (spec §4.2).
//
// Grounded on the teacher's per-format file convention: one file per
// format under hfe/ (bkd.go, cp2.go, pdi.go, pri.go, scp.go, td0.go),
// each exposing a ReadX/WriteX stub pair. Probers here follow the same
// one-file-per-format layout but return resolved geometry instead of
// an unimplemented-format error, since header probing — unlike full
// image decode — is squarely in scope (spec §4.2).
package probe

import "github.com/hxcfe/floppytrack/typetable"

// Result is what a successful prober hands back to the track-geometry
// builder: a resolved type-table entry, the cylinder count it implies,
// and the file offset of sector 0 (spec's IMG block `base_off`).
type Result struct {
	Entry  typetable.Entry
	NrCyls int
	// BaseOff is the byte offset within the file of the first sector.
	BaseOff int64
}

// Prober reads a format-specific header from the first bytes of a
// file (and, where the format requires it, the full file size and
// sector 0 for VIB-style embedded geometry) and returns a resolved
// Result, or false if the header does not match this format (spec
// §4.2: "on failure it either returns false ... or bails").
type Prober func(header []byte, fileSize int64) (Result, bool)
