package stub

import (
	"fmt"
	"strings"
)

// Method is the closed set of HTTP methods a stub can match.
type Method string

// Supported methods. ALL matches any method with a single registration.
const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	OPTIONS Method = "OPTIONS"
	HEAD    Method = "HEAD"
	ALL     Method = "ALL"
)

var methods = map[Method]struct{}{
	GET: {}, POST: {}, PUT: {}, PATCH: {}, DELETE: {}, OPTIONS: {}, HEAD: {}, ALL: {},
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

// String returns the method name.
func (m Method) String() string { return string(m) }

// ParseMethod parses a method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("stub: unsupported method %q", s)
	}
	return m, nil
}
