package contenttype

import "testing"

func TestExtension_KnownTypes(t *testing.T) {
	cases := map[string]string{
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
	for ct, want := range cases {
		if got := Extension(ct); got != want {
			t.Fatalf("Extension(%q) = %q, want %q", ct, got, want)
		}
	}
}

func TestExtension_NormalizesParametersAndCase(t *testing.T) {
	if got := Extension("audio/wav; codec=1"); got != ".wav" {
		t.Fatalf("expected .wav, got %q", got)
	}
	if got := Extension("AUDIO/MP4"); got != ".m4a" {
		t.Fatalf("expected .m4a, got %q", got)
	}
	if got := Extension("  audio/ogg ; charset=binary"); got != ".ogg" {
		t.Fatalf("expected .ogg, got %q", got)
	}
}

func TestExtension_UnknownFallsBack(t *testing.T) {
	for _, ct := range []string{"text/plain", "", ";;;", "application/json"} {
		if got := Extension(ct); got != FallbackExtension {
			t.Fatalf("Extension(%q) = %q, want %q", ct, got, FallbackExtension)
		}
	}
}

func TestFormats_ReturnsCopy(t *testing.T) {
	a := Formats()
	if len(a) != 9 {
		t.Fatalf("expected 9 formats, got %d", len(a))
	}
	a[0] = "tampered"
	if b := Formats(); b[0] != "wav" {
		t.Fatalf("Formats must not share backing storage, got %q", b[0])
	}
}
