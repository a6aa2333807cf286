package httpc

import (
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

type Httpc struct {
	TlsConfig *tls.Config
	Timeout   time.Duration
}

// New returns a resty.Client configured according to the receiver's settings.
// Defaults: MinVersion TLS1.2 when MinVersion is zero. A zero Timeout leaves
// the client without a deadline; callers wanting a download deadline set it
// explicitly.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	if h.Timeout > 0 {
		c.SetTimeout(h.Timeout)
	}
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	c.SetTLSClientConfig(cfg)
	return c
}
