package probe

import "github.com/hxcfe/floppytrack/typetable"

// ProbeST matches Atari ST images, whose geometry is the default
// 80-cylinder table with the IAM suppressed and skew=2 applied to
// 9-sector tracks (spec §4.2 "ST: derived from default 80-cyl table
// with IAM suppressed and skew=2 for 9-sector tracks").
func ProbeST(header []byte, fileSize int64) (Result, bool) {
	result, ok := typetable.Match(typetable.STTable(), fileSize)
	if !ok {
		return Result{}, false
	}
	return Result{Entry: result.Entry, NrCyls: result.NrCyls, BaseOff: 0}, true
}
