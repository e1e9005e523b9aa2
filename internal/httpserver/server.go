// Package httpserver exposes the cache admin API: proxied requests,
// cache info, purge and Prometheus metrics.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	reqcache "go-reqcache"
)

// Server is the admin HTTP server around a cache client.
type Server struct {
	client *reqcache.Client
	logger *zap.Logger
	server *http.Server
}

// NewServer creates an admin server for the given client.
func NewServer(client *reqcache.Client, logger *zap.Logger) *Server {
	return &Server{
		client: client,
		logger: logger,
	}
}

// Start starts the HTTP server on the given address and blocks until it
// stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting cache admin server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Stopping cache admin server")
	return s.server.Shutdown(ctx)
}

// Router builds the admin routes.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/request", s.handleRequest).Methods("POST")
	router.HandleFunc("/cache/info", s.handleInfo).Methods("GET")
	router.HandleFunc("/cache", s.handleClear).Methods("DELETE")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleRequest proxies one request through the cache client.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req ProxyRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Method == "" || req.URL == "" {
		s.writeErrorResponse(w, "Missing required fields: method, url", http.StatusBadRequest)
		return
	}

	ttl := s.client.DefaultTTL()
	if req.TTL != nil {
		ttl = *req.TTL
	}

	opts := &reqcache.Options{
		Headers: req.Headers,
		Params:  req.Params,
		JSON:    req.JSON,
	}
	if req.Data != "" {
		opts.Data = req.Data
	}

	resp, err := s.client.Request(r.Context(), req.Method, req.URL, ttl, opts)
	if err != nil {
		status := http.StatusBadGateway
		var ttlErr *reqcache.InvalidTTLError
		var malformed *reqcache.MalformedRequestError
		if errors.As(err, &ttlErr) || errors.As(err, &malformed) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, err.Error(), status)
		return
	}

	s.writeResponse(w, &ProxyResponse{
		Success:    true,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       resp.Text(),
		Encoding:   resp.Encoding,
	})
}

// handleInfo reports the state of the record directory.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, &InfoResponse{
		Success: true,
		Info:    s.client.CacheInfo(),
	})
}

// handleClear purges every cached record.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	deleted := s.client.ClearCache()
	s.logger.Info("Cache cleared", zap.Int("deleted", deleted))
	s.writeResponse(w, &ClearResponse{
		Success: true,
		Deleted: deleted,
	})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses a JSON request body.
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer func() { _ = r.Body.Close() }()

	return json.Unmarshal(body, v)
}

// writeResponse writes a JSON response.
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes an error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
