package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONResponse(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequest(http.MethodGet, "https://x.com/api", nil)
	require.NoError(t, err)

	t.Run("encodes data with correct content type", func(t *testing.T) {
		t.Parallel()
		resp, err := NewJSONResponse(req, http.StatusCreated, map[string]string{"foo": "bar"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Same(t, req, resp.Request)

		var got map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, map[string]string{"foo": "bar"}, got)
	})

	t.Run("nil data yields empty body", func(t *testing.T) {
		t.Parallel()
		resp, err := NewJSONResponse(req, http.StatusNoContent, nil)
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Empty(t, body)
		assert.Equal(t, int64(0), resp.ContentLength)
	})

	t.Run("unencodable data is an error", func(t *testing.T) {
		t.Parallel()
		_, err := NewJSONResponse(req, http.StatusOK, func() {})
		assert.Error(t, err)
	})
}

func TestNewErrorResponse(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequest(http.MethodGet, "https://x.com/api", nil)
	require.NoError(t, err)

	resp := NewErrorResponse(req, http.StatusBadRequest, "validation_failed", "body rejected")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "validation_failed", got["error"])
	assert.Equal(t, "body rejected", got["message"])
}

func TestBodyReader(t *testing.T) {
	t.Parallel()

	r := NewBodyReader([]byte("hello"))
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Exhausted reader keeps returning EOF.
	n, err := r.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	assert.NoError(t, r.Close())
}
