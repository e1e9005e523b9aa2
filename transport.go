package reqcache

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
)

//go:generate mockgen -package=mock -source=transport.go -destination=internal/mock/transport.go

// Transport executes HTTP requests on cache misses and bypasses. The
// cache layer forwards Options verbatim and never inspects the result
// beyond serializing it; transport errors propagate to the caller
// unchanged and are never cached.
type Transport interface {
	RoundTrip(ctx context.Context, method, url string, opts *Options) (*Response, error)
}

// Ensure HTTPTransport implements Transport
var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport is the default Transport on top of net/http.
type HTTPTransport struct {
	base     *http.Client
	insecure http.RoundTripper
}

// NewHTTPTransport creates the default transport with the given overall
// request timeout (0 means no timeout).
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		base: &http.Client{Timeout: timeout},
		insecure: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

// RoundTrip builds and executes the request, reading the full body into
// the returned Response.
func (t *HTTPTransport) RoundTrip(ctx context.Context, method, rawURL string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	target, err := buildURL(rawURL, opts.Params)
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildBody(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	for name, values := range opts.Headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range opts.Cookies {
		req.AddCookie(cookie)
	}
	if opts.BasicAuth != nil {
		req.SetBasicAuth(opts.BasicAuth.Username, opts.BasicAuth.Password)
	}

	client := t.clientFor(opts)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
		Encoding:   charsetOf(resp.Header.Get("Content-Type")),
	}, nil
}

// clientFor returns a client honoring the per-request options, copying
// the base client only when an option requires it.
func (t *HTTPTransport) clientFor(opts *Options) *http.Client {
	needsCopy := opts.Timeout > 0 || opts.InsecureSkipVerify ||
		(opts.FollowRedirects != nil && !*opts.FollowRedirects)
	if !needsCopy {
		return t.base
	}

	client := *t.base
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	if opts.InsecureSkipVerify {
		client.Transport = t.insecure
	}
	if opts.FollowRedirects != nil && !*opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &client
}

// buildURL merges explicit params into the URL's own query string.
func buildURL(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	for name, values := range params {
		query[name] = values
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// buildBody renders the request body per Options, JSON winning over Data.
func buildBody(opts *Options) (io.Reader, string, error) {
	if opts.JSON != nil {
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("marshal json body: %w", err)
		}
		return bytes.NewReader(encoded), "application/json", nil
	}

	switch data := opts.Data.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return bytes.NewReader([]byte(data.Encode())), "application/x-www-form-urlencoded", nil
	case map[string]string:
		values := make(url.Values, len(data))
		for k, v := range data {
			values.Set(k, v)
		}
		return bytes.NewReader([]byte(values.Encode())), "application/x-www-form-urlencoded", nil
	case []byte:
		return bytes.NewReader(data), "", nil
	case string:
		return bytes.NewReader([]byte(data)), "", nil
	default:
		return nil, "", fmt.Errorf("unsupported body type %T", data)
	}
}

// charsetOf extracts the charset parameter from a Content-Type value.
func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
