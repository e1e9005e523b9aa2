package reqcache

import (
	"net/http"
	"net/url"
	"time"
)

// BasicAuth carries credentials for HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// Options configures a single request. Params, Data and JSON also feed
// the cache fingerprint; everything else is passed through to the
// transport without affecting the cache key.
type Options struct {
	// Headers are added to the outgoing request.
	Headers http.Header

	// Params are query parameters merged with the URL's own query string.
	// A name given here replaces that name's URL-supplied values.
	Params url.Values

	// Data is a form or opaque request body: url.Values or
	// map[string]string are form-encoded, []byte and string are sent raw.
	// Ignored when JSON is set.
	Data interface{}

	// JSON is a structured request body, marshaled and sent as
	// application/json.
	JSON interface{}

	// Cookies are added to the outgoing request.
	Cookies []*http.Cookie

	// BasicAuth sets the Authorization header when non-nil.
	BasicAuth *BasicAuth

	// Timeout overrides the transport's default timeout when positive.
	Timeout time.Duration

	// FollowRedirects controls redirect handling. Nil means the
	// transport default (follow).
	FollowRedirects *bool

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// Extra is an escape hatch for transport-specific settings. The cache
	// layer never interprets it.
	Extra map[string]interface{}
}
