package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/audiofetch/internal/common"
	"github.com/loykin/audiofetch/internal/contenttype"
	"github.com/loykin/audiofetch/internal/credential"
	"github.com/loykin/audiofetch/internal/httpc"
)

const (
	// DefaultTimeout bounds the whole exchange: connect, TLS, headers, body.
	DefaultTimeout = 30 * time.Second
	// filenamePrefix is prepended to every generated download filename.
	filenamePrefix = "twilio_audio_"
	// chunkSize is the read granularity while buffering the response body.
	chunkSize = 8 * 1024
)

// Fetcher downloads a single audio resource, selecting Basic credentials per
// host through the router. One fetch is a blocking synchronous sequence; the
// router is read-only so a Fetcher is safe for concurrent use.
type Fetcher struct {
	router *credential.Router
	client *resty.Client
}

// New returns a Fetcher using the shared credential router and a client with
// the default download timeout.
func New(router *credential.Router) *Fetcher {
	h := httpc.Httpc{Timeout: DefaultTimeout}
	return &Fetcher{router: router, client: h.New()}
}

// NewWithClient allows injecting a preconfigured client.
func NewWithClient(router *credential.Router, client *resty.Client) *Fetcher {
	return &Fetcher{router: router, client: client}
}

// Fetch downloads rawURL and returns the outcome as data. It never panics
// across this boundary; anything unclassified becomes an unexpected_error
// result carrying the URL and the underlying message.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (result Result) {
	logger := common.GetLogger().WithComponent("fetcher")
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("unexpected error downloading audio from %s: %v", rawURL, r)
			logger.Error("panic during fetch", "url", rawURL, "cause", common.MaskSensitiveData(fmt.Sprint(r)))
			result = Failure(KindUnexpected, msg)
		}
	}()

	logger.Info("starting audio download", "url", rawURL)

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		logger.Error("unsupported URL scheme", "url", rawURL)
		return Failure(KindInvalidInput, "only HTTP and HTTPS URLs are supported")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		logger.Error("invalid URL format", "url", rawURL)
		return Failure(KindInvalidInput, fmt.Sprintf("invalid URL format: %s", rawURL))
	}

	req := f.client.R().SetContext(ctx).SetDoNotParseResponse(true)
	if cred, ok := f.router.Resolve(rawURL); ok {
		req.SetBasicAuth(cred.Username, cred.Password)
	} else {
		logger.Warn("no authentication configured", "url", rawURL)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		msg := fmt.Sprintf("HTTP request failed for %s: %v", rawURL, err)
		logger.Error("HTTP request failed", "url", rawURL, "error", common.MaskSensitiveData(err.Error()))
		return Failure(KindTransport, msg)
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	logger.Debug("received HTTP response", "status", resp.StatusCode())

	if resp.StatusCode() >= 400 {
		// The error body is intentionally discarded.
		return Failure(KindRemote, fmt.Sprintf("HTTP request failed: %s", resp.Status()))
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := filenamePrefix + lastPathSegment(parsed.Path) + contenttype.Extension(contentType)
	logger.Debug("determined filename", "filename", filename, "content_type", contentType)

	data, err := readAll(body)
	if err != nil {
		msg := fmt.Sprintf("HTTP request failed for %s: %v", rawURL, err)
		logger.Error("failed to read response body", "url", rawURL, "error", err)
		return Failure(KindTransport, msg)
	}
	if len(data) == 0 {
		logger.Error("downloaded file is empty", "url", rawURL)
		return Failure(KindEmptyPayload, "downloaded file is empty")
	}

	logger.Info("download complete", "url", rawURL, "size_bytes", len(data), "filename", filename)
	return Result{
		Success:     true,
		Data:        data,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   len(data),
	}
}

// lastPathSegment returns everything after the final '/' in path, which may
// be the empty string.
func lastPathSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// readAll buffers the whole body in fixed-size chunks.
func readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
