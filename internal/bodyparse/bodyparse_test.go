package bodyparse

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	val, err := Parse("application/json", []byte(`{"name":"John","age":30}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "John", "age": float64(30)}, val)
}

func TestParseJSONWithCharset(t *testing.T) {
	val, err := Parse("Application/JSON; charset=utf-8", []byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, val)
}

func TestParseJSONEmptyBody(t *testing.T) {
	val, err := Parse("application/json", nil)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestParseJSONMalformedIsHardError(t *testing.T) {
	val, err := Parse("application/json", []byte(`{not json`))
	assert.Error(t, err)
	assert.Nil(t, val)
}

func TestParseForm(t *testing.T) {
	val, err := Parse("application/x-www-form-urlencoded", []byte("name=John&age=30"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "John", "age": "30"}, val)
}

func TestParseFormDuplicateKeyLastWins(t *testing.T) {
	val, err := Parse("application/x-www-form-urlencoded", []byte("tag=a&tag=b"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tag": "b"}, val)
}

func TestParseFormInvalid(t *testing.T) {
	val, err := Parse("application/x-www-form-urlencoded", []byte("a=%zz"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestParseMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "John"))
	require.NoError(t, w.WriteField("tag", "a"))
	require.NoError(t, w.WriteField("tag", "b"))
	require.NoError(t, w.Close())

	val, err := Parse(w.FormDataContentType(), buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name": "John",
		"tag":  []string{"a", "b"},
	}, val)
}

func TestParseMultipartMissingBoundary(t *testing.T) {
	val, err := Parse("multipart/form-data", []byte("whatever"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{name: "no content type, valid JSON", body: `{"ok":true}`, want: map[string]any{"ok": true}},
		{name: "no content type, plain text", body: "hello world", want: "hello world"},
		{name: "unknown content type, plain text", contentType: "text/plain", body: "hi", want: "hi"},
		{name: "empty body", body: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := Parse(tt.contentType, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, val)
		})
	}
}
