package image

import "github.com/hxcfe/floppytrack/hostprofile"

// init registers the built-in format handlers (spec §6 "Handler
// vtable"), generalizing the teacher's hfe/imageformat.go extension
// table into a Format-keyed registry. ByExtension resolves a
// filename's dispatch Format the same way that table did.
func init() {
	Register(FormatIMG, NewIMGHandler(hostprofile.Default))
	Register(FormatHFE, HFEHandler{})

	for format := range probedFormats {
		Register(Format(format), NewProbedIMGHandler(hostprofile.Default, format))
	}
}

// probedFormats names the header-prober-driven IMG variants (spec
// §4.2), each dispatched through IMGHandler.ProbeFormat rather than
// the generic type-table walk.
var probedFormats = map[string]bool{
	"fdi":  true,
	"hdm":  true,
	"sdu":  true,
	"vdk":  true,
	"jvc":  true,
	"trd":  true,
	"ti99": true,
	"opd":  true,
	"st":   true,
}

// ByExtension maps a lowercase file extension (without the leading
// dot) to its dispatch Format, or "" if unrecognized.
func ByExtension(ext string) Format {
	switch ext {
	case "hfe":
		return FormatHFE
	case "img", "ima", "dsk":
		return FormatIMG
	default:
		if probedFormats[ext] {
			return Format(ext)
		}
		return ""
	}
}
