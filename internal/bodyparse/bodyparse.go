// Package bodyparse turns raw request bodies into structured values based on
// the declared content type.
//
// The parser is deliberately forgiving: apart from malformed JSON under an
// explicitly declared application/json content type, no parsing failure ever
// aborts request handling. Anything unparseable yields a nil body.
package bodyparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

// Parse produces a structured value from a raw body.
//
// Dispatch is by case-insensitive substring match on the content type:
//
//   - application/json: strict JSON; a parse failure is returned as an error
//   - application/x-www-form-urlencoded: flat string map, last value wins
//     for duplicated keys
//   - multipart/form-data: field map; a repeated field name promotes the
//     value to an ordered []string
//   - anything else (or no content type): the body text, parsed as JSON
//     when possible, raw text otherwise
//
// An empty body under the fallback path yields nil. Any panic during parsing
// is recovered and also yields nil.
func Parse(contentType string, data []byte) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			val, err = nil, nil
		}
	}()

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/json"):
		// Strictness applies to present bodies only; an absent body is
		// simply absent.
		if len(data) == 0 {
			return nil, nil
		}
		var v any
		if jerr := json.Unmarshal(data, &v); jerr != nil {
			return nil, fmt.Errorf("bodyparse: malformed JSON body: %w", jerr)
		}
		return v, nil

	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		return parseForm(data), nil

	case strings.Contains(ct, "multipart/form-data"):
		return parseMultipart(contentType, data), nil

	default:
		if len(data) == 0 {
			return nil, nil
		}
		var v any
		if jerr := json.Unmarshal(data, &v); jerr == nil {
			return v, nil
		}
		return string(data), nil
	}
}

// parseForm decodes URL-encoded key/value pairs into a flat map.
// Duplicated keys keep the last value, per standard form decoding.
func parseForm(data []byte) any {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return nil
	}

	form := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			form[key] = vals[len(vals)-1]
		}
	}
	return form
}

// parseMultipart decodes a multipart form into a field map. The first repeat
// of a field name promotes its value from string to []string; further
// repeats append.
func parseMultipart(contentType string, data []byte) any {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil
	}

	form := make(map[string]any)
	mr := multipart.NewReader(bytes.NewReader(data), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}

		name := part.FormName()
		if name == "" {
			continue
		}
		content, err := io.ReadAll(part)
		if err != nil {
			return nil
		}

		value := string(content)
		switch existing := form[name].(type) {
		case nil:
			form[name] = value
		case string:
			form[name] = []string{existing, value}
		case []string:
			form[name] = append(existing, value)
		}
	}
	return form
}
