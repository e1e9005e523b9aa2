package reqcache

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the value the cache round-trips: status line, header
// multimap and body bytes, serialized explicitly as JSON rather than
// through an opaque object-graph serializer.
type Response struct {
	StatusCode int         `json:"status_code"`
	Status     string      `json:"status"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`

	// Encoding is the charset from the Content-Type header, when present.
	Encoding string `json:"encoding,omitempty"`
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON unmarshals the body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// encodeResponse serializes a response for storage in a cache record.
func encodeResponse(resp *Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return data, nil
}

// decodeResponse restores a response from a cache record payload.
func decodeResponse(payload []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode cached response: %w", err)
	}
	if resp.StatusCode == 0 {
		return nil, fmt.Errorf("decode cached response: missing status code")
	}
	return &resp, nil
}
