package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	reqcache "go-reqcache"
	"go-reqcache/internal/mock"
)

func newTestServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock.MockTransport) {
	t.Helper()

	transport := mock.NewMockTransport(ctrl)
	client, err := reqcache.NewWithTransport(&reqcache.Config{
		CacheDir: filepath.Join(t.TempDir(), "cache"),
	}, transport, zap.NewNop())
	require.NoError(t, err)

	return NewServer(client, zap.NewNop()), transport
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_HandleRequest_ProxiesThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, transport := newTestServer(t, ctrl)

	transport.EXPECT().
		RoundTrip(gomock.Any(), "GET", "https://api.example.com/items", gomock.Any()).
		Return(&reqcache.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       []byte(`{"items":[]}`),
		}, nil).
		Times(1)

	ttl := 3600
	payload := ProxyRequest{Method: "GET", URL: "https://api.example.com/items", TTL: &ttl}

	// Two identical requests: the second is served from cache.
	for i := 0; i < 2; i++ {
		rec := doJSON(t, server, "POST", "/request", payload)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProxyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `{"items":[]}`, resp.Body)
	}
}

func TestServer_HandleRequest_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, _ := newTestServer(t, ctrl)

	rec := doJSON(t, server, "POST", "/request", ProxyRequest{Method: "GET"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HandleRequest_InvalidTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, _ := newTestServer(t, ctrl)

	ttl := -5
	rec := doJSON(t, server, "POST", "/request", ProxyRequest{
		Method: "GET",
		URL:    "https://h/p",
		TTL:    &ttl,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HandleClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, transport := newTestServer(t, ctrl)

	transport.EXPECT().
		RoundTrip(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&reqcache.Response{StatusCode: 200, Status: "200 OK", Body: []byte(`{}`)}, nil).
		Times(2)

	ttl := 3600
	doJSON(t, server, "POST", "/request", ProxyRequest{Method: "GET", URL: "https://h/a", TTL: &ttl})
	doJSON(t, server, "POST", "/request", ProxyRequest{Method: "GET", URL: "https://h/b", TTL: &ttl})

	rec := doJSON(t, server, "DELETE", "/cache", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClearResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Deleted)
}

func TestServer_HandleInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, _ := newTestServer(t, ctrl)

	rec := doJSON(t, server, "GET", "/cache/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Info.Exists)
	assert.Equal(t, 0, resp.Info.TotalFiles)
}

func TestServer_HandleHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, _ := newTestServer(t, ctrl)

	rec := doJSON(t, server, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, _ := newTestServer(t, ctrl)

	rec := doJSON(t, server, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
