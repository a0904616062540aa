// Package routepattern compiles the route pattern syntax used by stub
// registrations into matchable form.
//
// Patterns support three constructs:
//
//   - "*" matches any run of characters, so a leading "*/" covers the
//     scheme and host of a full URL ("*/api/users" matches
//     "https://x.com/api/users")
//   - ":name" matches a single path segment and captures it as a named
//     parameter ("/users/:id" captures params["id"])
//   - everything else matches literally
//
// A ":" is treated as a parameter marker only when followed by a letter or
// underscore, so port numbers ("localhost:8080") stay literal.
package routepattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled route pattern.
type Pattern struct {
	raw   string
	re    *regexp.Regexp
	names []string
}

// Compile parses a route pattern. It returns an error for an empty pattern
// or one that produces an invalid expression (e.g. a duplicated parameter
// name).
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, errors.New("routepattern: empty pattern")
	}

	var b strings.Builder
	b.WriteString("^")
	var names []string

	i := 0
	for i < len(raw) {
		switch {
		case raw[i] == '*':
			b.WriteString(".*")
			i++
		case raw[i] == ':' && i+1 < len(raw) && isNameStart(raw[i+1]):
			j := i + 1
			for j < len(raw) && isNameChar(raw[j]) {
				j++
			}
			name := raw[i+1 : j]
			names = append(names, name)
			fmt.Fprintf(&b, "(?P<%s>[^/?#]+)", name)
			i = j
		default:
			j := i
			for j < len(raw) && raw[j] != '*' && !(raw[j] == ':' && j+1 < len(raw) && isNameStart(raw[j+1])) {
				j++
			}
			b.WriteString(regexp.QuoteMeta(raw[i:j]))
			i = j
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("routepattern: compile %q: %w", raw, err)
	}

	return &Pattern{raw: raw, re: re, names: names}, nil
}

// Match reports whether target matches the pattern. When it does, the
// returned map holds the captured named parameters (nil when the pattern
// declares none).
func (p *Pattern) Match(target string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(target)
	if m == nil {
		return nil, false
	}
	if len(p.names) == 0 {
		return nil, true
	}

	params := make(map[string]string, len(p.names))
	for i, name := range p.re.SubexpNames() {
		if i > 0 && name != "" && i < len(m) {
			params[name] = m[i]
		}
	}
	return params, true
}

// String returns the original pattern source.
func (p *Pattern) String() string { return p.raw }

// HasParams reports whether the pattern declares named parameters.
func (p *Pattern) HasParams() bool { return len(p.names) > 0 }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
