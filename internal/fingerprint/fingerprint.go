// Package fingerprint derives deterministic cache keys from request
// identity: method, normalized URL, merged query parameters and body.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Body carries at most one request body representation. JSON wins over
// Data when both are set; callers are expected to supply only one.
type Body struct {
	// JSON is a structured body. It is digested via canonical JSON
	// (encoding/json sorts map keys), so key order never changes the key.
	JSON interface{}

	// Data is a form or opaque body: url.Values or map[string]string are
	// digested as sorted form-encoded pairs, []byte and string as raw bytes.
	Data interface{}
}

// Key computes the cache key for a request. The same request identity
// always yields the same key: the URL's own query string and the explicit
// params are merged into one multimap (explicit values replace the URL's
// values for that name, other URL names survive), sorted by name, and
// digested together with the uppercased method, the query-less URL and
// the body digest. The function does no I/O and returns an error only
// for URLs that cannot be parsed or lack a scheme or host.
func Key(method, rawURL string, params url.Values, body Body) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", rawURL)
	}

	normalized := parsed.Scheme + "://" + parsed.Host + parsed.Path

	merged, err := url.ParseQuery(parsed.RawQuery)
	if err != nil {
		return "", fmt.Errorf("parse query of %q: %w", rawURL, err)
	}
	for name, values := range params {
		merged[name] = values
	}

	bodyHash, err := digestBody(body)
	if err != nil {
		return "", err
	}

	// url.Values.Encode sorts by name, which makes the rendering canonical.
	identity := strings.Join([]string{
		strings.ToUpper(method),
		normalized,
		merged.Encode(),
		bodyHash,
	}, "|")

	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:]), nil
}

// digestBody hashes the request body per its kind. An empty Body yields
// an empty digest so body-less requests stay distinguishable from
// requests with an empty-string body.
func digestBody(body Body) (string, error) {
	if body.JSON != nil {
		encoded, err := json.Marshal(body.JSON)
		if err != nil {
			return "", fmt.Errorf("marshal json body: %w", err)
		}
		return hexDigest(encoded), nil
	}

	switch data := body.Data.(type) {
	case nil:
		return "", nil
	case url.Values:
		return hexDigest([]byte(sortedFormEncode(data))), nil
	case map[string]string:
		values := make(url.Values, len(data))
		for k, v := range data {
			values.Set(k, v)
		}
		return hexDigest([]byte(sortedFormEncode(values))), nil
	case []byte:
		return hexDigest(data), nil
	case string:
		return hexDigest([]byte(data)), nil
	default:
		return "", errors.New("unsupported body type")
	}
}

// sortedFormEncode renders form pairs sorted by name, values in given order.
func sortedFormEncode(values url.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		for _, value := range values[name] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(value))
		}
	}
	return b.String()
}

func hexDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
