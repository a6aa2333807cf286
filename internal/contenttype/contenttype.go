package contenttype

import "strings"

// FallbackExtension is used for unknown or malformed content types.
const FallbackExtension = ".bin"

// extensions maps normalized MIME types to filename suffixes.
// Several aliases collapse onto one extension (wav variants, mp4/m4a).
var extensions = map[string]string{
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/wave":  ".wav",
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/mp4":   ".m4a",
	"audio/m4a":   ".m4a",
	"audio/aac":   ".aac",
	"audio/ogg":   ".ogg",
	"audio/flac":  ".flac",
	"audio/webm":  ".webm",
	"audio/3gpp":  ".3gp",
	"audio/amr":   ".amr",
}

// formats lists the canonical audio formats (extension without dot) reported
// by the config snapshot, in a fixed order.
var formats = []string{"wav", "mp3", "m4a", "aac", "ogg", "flac", "webm", "3gp", "amr"}

// Extension returns the filename suffix for an HTTP Content-Type header value.
// Parameters after ';' are ignored and matching is case-insensitive.
// Unknown types map to FallbackExtension; the function never fails.
func Extension(contentType string) string {
	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ext, ok := extensions[ct]; ok {
		return ext
	}
	return FallbackExtension
}

// Formats returns the supported audio formats in reporting order.
// The returned slice is a copy.
func Formats() []string {
	out := make([]string, len(formats))
	copy(out, formats)
	return out
}
