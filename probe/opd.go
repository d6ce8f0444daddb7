package probe

import "github.com/hxcfe/floppytrack/typetable"

// ProbeOPD matches Acorn DFS single-density images (SSD/DSD
// extension), which carry no header: geometry comes straight from
// typetable.OPDTable (spec §4.2 "OPD / DFS (SSD/DSD): 256-byte FM
// sectors; skew is cylinder-only").
func ProbeOPD(header []byte, fileSize int64) (Result, bool) {
	result, ok := typetable.Match(typetable.OPDTable(), fileSize)
	if !ok {
		return Result{}, false
	}
	return Result{Entry: result.Entry, NrCyls: result.NrCyls, BaseOff: 0}, true
}
