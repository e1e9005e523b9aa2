package reqcache

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_EncodeDecode(t *testing.T) {
	resp := &Response{
		StatusCode: http.StatusCreated,
		Status:     "201 Created",
		Header: http.Header{
			"Content-Type": {"application/json; charset=utf-8"},
			"Set-Cookie":   {"a=1", "b=2"},
		},
		Body:     []byte(`{"id":42}`),
		Encoding: "utf-8",
	}

	payload, err := encodeResponse(resp)
	require.NoError(t, err)

	decoded, err := decodeResponse(payload)
	require.NoError(t, err)

	assert.Equal(t, resp.StatusCode, decoded.StatusCode)
	assert.Equal(t, resp.Status, decoded.Status)
	assert.Equal(t, resp.Header, decoded.Header)
	assert.Equal(t, resp.Body, decoded.Body)
	assert.Equal(t, resp.Encoding, decoded.Encoding)

	// Multi-valued headers survive the round-trip.
	assert.Equal(t, []string{"a=1", "b=2"}, decoded.Header["Set-Cookie"])
}

func TestDecodeResponse_Invalid(t *testing.T) {
	_, err := decodeResponse([]byte("not json"))
	assert.Error(t, err)

	// Decodable JSON without a status code is not a response.
	_, err = decodeResponse([]byte(`{"body":""}`))
	assert.Error(t, err)
}

func TestResponse_Accessors(t *testing.T) {
	resp := &Response{Body: []byte(`{"name":"x"}`)}

	assert.Equal(t, `{"name":"x"}`, resp.Text())

	var parsed struct {
		Name string `json:"name"`
	}
	require.NoError(t, resp.JSON(&parsed))
	assert.Equal(t, "x", parsed.Name)
}
