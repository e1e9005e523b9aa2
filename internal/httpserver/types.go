package httpserver

import (
	"net/http"

	reqcache "go-reqcache"
)

// ProxyRequest represents a request to execute through the cache layer.
type ProxyRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`

	// TTL is the cache control value; nil means the client's default.
	TTL *int `json:"ttl,omitempty"`

	Headers http.Header         `json:"headers,omitempty"`
	Params  map[string][]string `json:"params,omitempty"`
	Data    string              `json:"data,omitempty"`
	JSON    interface{}         `json:"json,omitempty"`
}

// ProxyResponse represents the outcome of a proxied request.
type ProxyResponse struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"status_code,omitempty"`
	Status     string      `json:"status,omitempty"`
	Headers    http.Header `json:"headers,omitempty"`
	Body       string      `json:"body,omitempty"`
	Encoding   string      `json:"encoding,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ClearResponse reports how many records a purge removed.
type ClearResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// InfoResponse wraps the cache info report.
type InfoResponse struct {
	Success bool               `json:"success"`
	Info    reqcache.CacheInfo `json:"info"`
}
