// Package httputil provides shared helpers for building in-memory HTTP
// responses emitted by the interception engine.
package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// NewResponse builds an *http.Response carrying the given raw body.
// The header map is used as-is; pass nil for an empty header.
func NewResponse(req *http.Request, status int, header http.Header, body []byte) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// NewJSONResponse builds a response with data JSON-encoded as the body and
// Content-Type set to application/json. A nil data value yields an empty
// body.
func NewJSONResponse(req *http.Request, status int, data any) (*http.Response, error) {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	if data == nil {
		return NewResponse(req, status, header, nil), nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("httputil: encode response body: %w", err)
	}
	return NewResponse(req, status, header, body), nil
}

// NewErrorResponse builds a JSON error response with an error code and a
// human-readable message.
func NewErrorResponse(req *http.Request, status int, errCode, message string) *http.Response {
	resp, _ := NewJSONResponse(req, status, map[string]string{
		"error":   errCode,
		"message": message,
	})
	return resp
}

// BodyReader is a rewindable bytes reader implementing io.ReadCloser, used
// to replace consumed request bodies so downstream readers see the same
// bytes.
type BodyReader struct {
	data   []byte
	offset int
}

// NewBodyReader creates a BodyReader over data.
func NewBodyReader(data []byte) *BodyReader {
	return &BodyReader{data: data}
}

// Read implements io.Reader.
func (r *BodyReader) Read(p []byte) (n int, err error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.offset:])
	r.offset += n
	return n, nil
}

// Close implements io.Closer.
func (r *BodyReader) Close() error {
	return nil
}
