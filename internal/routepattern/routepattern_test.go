package routepattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileErrors(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)

	// Duplicated parameter names produce duplicate capture groups.
	_, err = Compile("/a/:id/b/:id")
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		target     string
		wantMatch  bool
		wantParams map[string]string
	}{
		{
			name:      "exact match",
			pattern:   "https://api.example.com/users",
			target:    "https://api.example.com/users",
			wantMatch: true,
		},
		{
			name:      "exact mismatch",
			pattern:   "https://api.example.com/users",
			target:    "https://api.example.com/orders",
			wantMatch: false,
		},
		{
			name:       "host wildcard with named param",
			pattern:    "*/api/users/:id",
			target:     "https://x.com/api/users/42",
			wantMatch:  true,
			wantParams: map[string]string{"id": "42"},
		},
		{
			name:      "named param does not span segments",
			pattern:   "*/api/users/:id",
			target:    "https://x.com/api/users/42/posts",
			wantMatch: false,
		},
		{
			name:       "multiple named params",
			pattern:    "/repos/:owner/:repo",
			target:     "/repos/octocat/hello",
			wantMatch:  true,
			wantParams: map[string]string{"owner": "octocat", "repo": "hello"},
		},
		{
			name:      "port colon stays literal",
			pattern:   "http://localhost:8080/health",
			target:    "http://localhost:8080/health",
			wantMatch: true,
		},
		{
			name:      "wildcard in middle",
			pattern:   "/api/*/items",
			target:    "/api/v2/items",
			wantMatch: true,
		},
		{
			name:      "regex metacharacters are literal",
			pattern:   "/search?q=a.b",
			target:    "/search?q=a.b",
			wantMatch: true,
		},
		{
			name:      "regex metacharacters do not wildcard",
			pattern:   "/search?q=a.b",
			target:    "/search?q=aXb",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)

			params, ok := p.Match(tt.target)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantParams != nil {
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}

func TestHasParams(t *testing.T) {
	p, err := Compile("/users/:id")
	require.NoError(t, err)
	assert.True(t, p.HasParams())

	p, err = Compile("/users/*")
	require.NoError(t, err)
	assert.False(t, p.HasParams())
	assert.Equal(t, "/users/*", p.String())
}
