package credential

import (
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/loykin/audiofetch/internal/common"
)

// EnvPrefix marks environment entries carrying additional host credentials.
// Value format: base_url '|' username ':' password.
const EnvPrefix = "AUTH_"

// twilioHostMarker selects the implicit provider route by substring match.
// This is intentionally looser than the exact-host table below.
const twilioHostMarker = "twilio.com"

// Credential is a Basic-auth username/password pair. Its string forms are
// redacted so a credential can never leak through formatting or logging.
type Credential struct {
	Username string
	Password string
}

func (c Credential) String() string { return "***REDACTED***" }

// LogValue implements slog.LogValuer so structured logs show only redaction.
func (c Credential) LogValue() slog.Value { return slog.StringValue("***REDACTED***") }

// Route binds an exact lowercased host to a credential. Origin keeps the base
// URL string the entry was declared against, for diagnostics only.
type Route struct {
	Host       string
	Credential Credential
	Origin     string
}

// Router resolves Basic credentials for request URLs. It is built once at
// startup and never mutated afterwards, so concurrent reads need no locking.
type Router struct {
	twilio     Credential
	hasTwilio  bool
	routes     map[string]Route
	hostsOrder []string
}

// Build constructs a Router from an explicit set of environment-style pairs
// plus the distinguished provider credentials. The provider route is
// registered only when both accountSID and authToken are non-empty.
//
// AUTH_* entries missing either separator, or with an unparsable or empty
// host, are skipped silently. Keys are processed in sorted order so duplicate
// hosts resolve deterministically (last key wins).
func Build(pairs map[string]string, accountSID, authToken string) *Router {
	logger := common.GetLogger().WithComponent("credential")
	r := &Router{routes: map[string]Route{}}

	if accountSID != "" && authToken != "" {
		r.twilio = Credential{Username: accountSID, Password: authToken}
		r.hasTwilio = true
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		if strings.HasPrefix(k, EnvPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := pairs[k]
		base, auth, ok := strings.Cut(v, "|")
		if !ok {
			continue
		}
		user, pass, ok := strings.Cut(auth, ":")
		if !ok {
			continue
		}
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.ToLower(u.Host)
		if _, exists := r.routes[host]; !exists {
			r.hostsOrder = append(r.hostsOrder, host)
		}
		r.routes[host] = Route{
			Host:       host,
			Credential: Credential{Username: user, Password: pass},
			Origin:     base,
		}
		logger.Debug("registered auth route", "key", k, "host", host)
	}
	return r
}

// Resolve returns the credential for rawURL, if any. Hosts containing the
// provider marker take the provider credential by substring match, ahead of
// any exact table entry for the same host. Unknown hosts resolve to nothing
// and the fetch proceeds unauthenticated.
func (r *Router) Resolve(rawURL string) (Credential, bool) {
	logger := common.GetLogger().WithComponent("credential")
	u, err := url.Parse(rawURL)
	if err != nil {
		return Credential{}, false
	}
	host := strings.ToLower(u.Host)
	if r.hasTwilio && strings.Contains(host, twilioHostMarker) {
		logger.Info("using provider authentication", "host", host)
		return r.twilio, true
	}
	if route, ok := r.routes[host]; ok {
		logger.Info("using configured authentication", "host", host)
		return route.Credential, true
	}
	return Credential{}, false
}

// TwilioConfigured reports whether the provider credential pair is set.
func (r *Router) TwilioConfigured() bool { return r.hasTwilio }

// Domains returns the exact-match hosts in registration order.
func (r *Router) Domains() []string {
	out := make([]string, len(r.hostsOrder))
	copy(out, r.hostsOrder)
	return out
}
