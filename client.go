package reqcache

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-reqcache/internal/fingerprint"
	"go-reqcache/internal/interfaces"
	"go-reqcache/internal/metrics"
	"go-reqcache/internal/models"
	"go-reqcache/internal/store/file"
	"go-reqcache/internal/store/memory"
	"go-reqcache/internal/store/tiered"
)

// TTL control values accepted by every request method.
const (
	// TTLDisabled bypasses the cache for the call: no read, no write.
	TTLDisabled = models.TTLDisabled
	// TTLPermanent caches the result forever.
	TTLPermanent = models.TTLPermanent
	// TTLDefault caches the result for one day.
	TTLDefault = 86400
)

// DefaultCacheDir is the record directory used when none is configured.
const DefaultCacheDir = ".cache"

// CacheInfo summarizes the state of the record directory.
type CacheInfo struct {
	Exists         bool    `json:"exists"`
	CacheDir       string  `json:"cache_dir"`
	TotalFiles     int     `json:"total_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	ValidEntries   int     `json:"valid_entries"`
	ExpiredEntries int     `json:"expired_entries"`
}

// Client is the caching HTTP client. It owns its record store, its
// transport and its default TTL; construct one per desired cache scope
// rather than sharing hidden package state.
type Client struct {
	store      interfaces.Store
	transport  Transport
	defaultTTL int
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a client with the default net/http transport.
func New(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewWithTransport(cfg, NewHTTPTransport(cfg.transportTimeout()), logger)
}

// NewWithTransport creates a client around a caller-supplied transport.
func NewWithTransport(cfg *Config, transport Transport, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	var store interfaces.Store = file.New(cfg.CacheDir, logger)
	if cfg.Memory.Enabled {
		hot, err := memory.New(cfg.Memory.SizeMB, logger)
		if err != nil {
			return nil, err
		}
		store = tiered.New([]interfaces.Store{hot, store}, true, logger)
	}

	return &Client{
		store:      store,
		transport:  transport,
		defaultTTL: cfg.DefaultTTLSeconds,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// DefaultTTL returns the ttl applied when callers pass the configured
// default explicitly.
func (c *Client) DefaultTTL() int {
	return c.defaultTTL
}

// Request executes method against rawURL with TTL-based caching control.
// ttl must be TTLPermanent, TTLDisabled or a positive number of seconds;
// anything else fails with InvalidTTLError before any I/O. Transport
// failures propagate unchanged and are never cached.
func (c *Client) Request(ctx context.Context, method, rawURL string, ttl int, opts *Options) (*Response, error) {
	if ttl < TTLPermanent {
		return nil, &InvalidTTLError{TTL: ttl}
	}

	method = strings.ToUpper(method)
	metrics.RecordRequest(method)

	if opts == nil {
		opts = &Options{}
	}

	if ttl == TTLDisabled {
		metrics.RecordBypass(method)
		return c.transport.RoundTrip(ctx, method, rawURL, opts)
	}

	key, err := fingerprint.Key(method, rawURL, opts.Params, fingerprint.Body{
		JSON: opts.JSON,
		Data: opts.Data,
	})
	if err != nil {
		return nil, &MalformedRequestError{URL: rawURL, Err: err}
	}

	if rec, found := c.store.Get(key); found && rec.Valid(c.now()) {
		resp, err := decodeResponse(rec.Payload)
		if err == nil {
			metrics.RecordHit(method)
			c.logger.Debug("Cache hit",
				zap.String("method", method),
				zap.String("url", rawURL),
				zap.String("key", key))
			return resp, nil
		}
		c.logger.Debug("Undecodable cached payload treated as miss",
			zap.String("key", key), zap.Error(err))
	}

	metrics.RecordMiss(method)

	// The transport call runs outside the store lock, so concurrent
	// misses on different keys don't serialize on each other.
	resp, err := c.transport.RoundTrip(ctx, method, rawURL, opts)
	if err != nil {
		metrics.RecordTransportError(method)
		return nil, err
	}

	c.writeRecord(key, resp, ttl)
	return resp, nil
}

// writeRecord persists a fresh response. Write failures are logged and
// swallowed: a broken cache must never fail a request that already
// succeeded on the network.
func (c *Client) writeRecord(key string, resp *Response, ttl int) {
	payload, err := encodeResponse(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for caching", zap.String("key", key), zap.Error(err))
		return
	}

	rec := &models.CacheRecord{
		CreatedAt:  c.now().Unix(),
		TTLSeconds: ttl,
		Payload:    payload,
	}
	if err := c.store.Put(key, rec); err != nil {
		c.logger.Warn("Failed to write cache record", zap.String("key", key), zap.Error(err))
	}
}

// Get makes a GET request with TTL-based caching control.
func (c *Client) Get(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "GET", url, ttl, opts)
}

// Post makes a POST request with TTL-based caching control.
func (c *Client) Post(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "POST", url, ttl, opts)
}

// Put makes a PUT request with TTL-based caching control.
func (c *Client) Put(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "PUT", url, ttl, opts)
}

// Delete makes a DELETE request with TTL-based caching control.
func (c *Client) Delete(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "DELETE", url, ttl, opts)
}

// Patch makes a PATCH request with TTL-based caching control.
func (c *Client) Patch(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "PATCH", url, ttl, opts)
}

// Head makes a HEAD request with TTL-based caching control.
func (c *Client) Head(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "HEAD", url, ttl, opts)
}

// Options makes an OPTIONS request with TTL-based caching control.
func (c *Client) Options(ctx context.Context, url string, ttl int, opts *Options) (*Response, error) {
	return c.Request(ctx, "OPTIONS", url, ttl, opts)
}

// ClearCache removes every cached record and returns how many were
// deleted. Individual deletion failures are skipped.
func (c *Client) ClearCache() int {
	return c.store.DeleteAll()
}

// CacheInfo reports the state of the record directory. A directory that
// does not exist yet yields Exists=false with zero counters.
func (c *Client) CacheInfo() CacheInfo {
	stats := c.store.Stats(c.now())
	return CacheInfo{
		Exists:         stats.Exists,
		CacheDir:       stats.CacheDir,
		TotalFiles:     stats.TotalFiles,
		TotalSizeBytes: stats.TotalSizeBytes,
		TotalSizeMB:    math.Round(float64(stats.TotalSizeBytes)/(1024*1024)*100) / 100,
		ValidEntries:   stats.ValidEntries,
		ExpiredEntries: stats.ExpiredEntries,
	}
}
