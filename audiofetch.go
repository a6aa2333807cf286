package audiofetch

import (
	"context"

	"github.com/loykin/audiofetch/internal/config"
	"github.com/loykin/audiofetch/internal/contenttype"
	"github.com/loykin/audiofetch/internal/credential"
	"github.com/loykin/audiofetch/internal/fetcher"
)

// Re-export commonly used types for public API

// Credential is a Basic-auth username/password pair with redacted formatting.
type Credential = credential.Credential

// CredentialRouter resolves per-host Basic credentials for request URLs.
type CredentialRouter = credential.Router

// FetchResult is the outcome of a single download.
type FetchResult = fetcher.Result

// FetchErrorKind classifies failed downloads.
type FetchErrorKind = fetcher.Kind

// Failure kinds re-exported for callers inspecting results.
const (
	ErrKindInvalidInput = fetcher.KindInvalidInput
	ErrKindTransport    = fetcher.KindTransport
	ErrKindRemote       = fetcher.KindRemote
	ErrKindEmptyPayload = fetcher.KindEmptyPayload
	ErrKindUnexpected   = fetcher.KindUnexpected
)

// Config is the process configuration loaded at startup.
type Config = config.Config

// ConfigSnapshot is the non-secret configuration projection.
type ConfigSnapshot = config.Snapshot

// BuildCredentialRouter constructs an immutable routing table from explicit
// environment-style pairs plus the provider credential pair.
func BuildCredentialRouter(pairs map[string]string, accountSID, authToken string) *CredentialRouter {
	return credential.Build(pairs, accountSID, authToken)
}

// Fetch downloads url using credentials resolved through router. The whole
// payload is buffered; failures are returned as data, never as a panic.
func Fetch(ctx context.Context, router *CredentialRouter, url string) FetchResult {
	return fetcher.New(router).Fetch(ctx, url)
}

// ExtensionForContentType maps an HTTP Content-Type header to a filename
// suffix, falling back to ".bin" for unknown types.
func ExtensionForContentType(ct string) string {
	return contenttype.Extension(ct)
}
