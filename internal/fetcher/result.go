package fetcher

// Kind classifies a failed fetch for the caller's retry decision.
type Kind string

const (
	// KindInvalidInput marks a malformed or unsupported URL. Not retryable.
	KindInvalidInput Kind = "invalid_input"
	// KindTransport marks a network, DNS or TLS failure. Possibly retryable.
	KindTransport Kind = "transport_error"
	// KindRemote marks a non-2xx HTTP status from the remote.
	KindRemote Kind = "remote_error"
	// KindEmptyPayload marks a zero-byte body, regardless of status code.
	KindEmptyPayload Kind = "empty_payload"
	// KindUnexpected is the catch-all; the message carries the URL and cause.
	KindUnexpected Kind = "unexpected_error"
)

// Result is the outcome of one fetch. Exactly one variant is populated:
// Success carries the payload fields, a failure carries ErrorKind and
// ErrorMessage only. SizeBytes always equals len(Data).
type Result struct {
	Success      bool   `json:"success"`
	Data         []byte `json:"-"`
	Filename     string `json:"filename,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	SizeBytes    int    `json:"size_bytes,omitempty"`
	ErrorKind    Kind   `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Failure builds the failed variant.
func Failure(kind Kind, msg string) Result {
	return Result{Success: false, ErrorKind: kind, ErrorMessage: msg}
}
