package pointermask

import "strings"

// AlphaSupport describes how well a container format carries an alpha channel.
type AlphaSupport uint8

const (
	// AlphaNone means the format has no alpha channel (e.g. JPEG); every
	// pixel samples as fully opaque.
	AlphaNone AlphaSupport = iota
	// AlphaFull means the format carries 8-bit (or better) alpha.
	AlphaFull
	// AlphaLimited means the format carries only 1-bit transparency
	// (e.g. GIF), so thresholds between 0 and 1 all behave alike.
	AlphaLimited
)

// Format is advisory transparency/compatibility metadata for a source
// identifier. It never blocks registration; it only feeds diagnostics.
type Format struct {
	Extension string
	Alpha     AlphaSupport
	Support   string // "universal", "modern", or "legacy"
	Known     bool
}

// formatTable maps lower-cased extensions to their classification.
var formatTable = map[string]Format{
	"png":  {Extension: "png", Alpha: AlphaFull, Support: "universal", Known: true},
	"apng": {Extension: "apng", Alpha: AlphaFull, Support: "modern", Known: true},
	"webp": {Extension: "webp", Alpha: AlphaFull, Support: "modern", Known: true},
	"avif": {Extension: "avif", Alpha: AlphaFull, Support: "modern", Known: true},
	"svg":  {Extension: "svg", Alpha: AlphaFull, Support: "universal", Known: true},
	"gif":  {Extension: "gif", Alpha: AlphaLimited, Support: "universal", Known: true},
	"ico":  {Extension: "ico", Alpha: AlphaLimited, Support: "legacy", Known: true},
	"jpg":  {Extension: "jpg", Alpha: AlphaNone, Support: "universal", Known: true},
	"jpeg": {Extension: "jpeg", Alpha: AlphaNone, Support: "universal", Known: true},
	"jfif": {Extension: "jfif", Alpha: AlphaNone, Support: "legacy", Known: true},
	"bmp":  {Extension: "bmp", Alpha: AlphaNone, Support: "legacy", Known: true},
	"tif":  {Extension: "tif", Alpha: AlphaFull, Support: "legacy", Known: true},
	"tiff": {Extension: "tiff", Alpha: AlphaFull, Support: "legacy", Known: true},
}

// Classify maps a source identifier's trailing filename extension to known
// transparency metadata. The query string and fragment are stripped and the
// extension lower-cased first. Unknown or missing extensions yield a zero
// Format with Known=false.
func Classify(identifier string) Format {
	s := identifier
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	// Trailing path segment only: an extension-less directory component must
	// not contribute a dot.
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 || dot == len(s)-1 {
		return Format{}
	}
	ext := strings.ToLower(s[dot+1:])
	if f, ok := formatTable[ext]; ok {
		return f
	}
	return Format{Extension: ext}
}
