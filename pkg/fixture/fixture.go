// Package fixture loads route stub declarations from YAML or JSON files.
//
// A fixture file holds a list of stubs, with bodies given either inline as
// structured values or as strings, following the same convention the mock
// config format uses:
//
//	stubs:
//	  - method: GET
//	    route: "*/api/users/:id"
//	    status: 200
//	    body: { name: John }
//	  - method: POST
//	    route: "*/api/orders"
//	    sequence:
//	      - { status: 503, body: { error: unavailable } }
//	      - { status: 201, body: { ok: true } }
//
// YAML being a superset of JSON, the same loader accepts both.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/httpstub/httpstub/pkg/registry"
	"github.com/httpstub/httpstub/pkg/stub"
)

// File is the top-level fixture document.
type File struct {
	Stubs []Stub `json:"stubs" yaml:"stubs"`
}

// Stub is one declared route stub.
type Stub struct {
	// Name is an optional human-readable label, used in load errors.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Method string `json:"method" yaml:"method"`
	Route  string `json:"route" yaml:"route"`

	// Status is the response status code; zero means 200.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`

	// Body is the response value: a structured value or a string.
	Body any `json:"body,omitempty" yaml:"body,omitempty"`

	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Delay is a duration string like "100ms".
	Delay string `json:"delay,omitempty" yaml:"delay,omitempty"`

	// Sequence, when non-empty, overrides status/body.
	Sequence []Entry `json:"sequence,omitempty" yaml:"sequence,omitempty"`

	// Schema is an optional JSON Schema for request bodies, given inline as
	// a structured value or as a string.
	Schema any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Entry is one sequential response step.
type Entry struct {
	Status int `json:"status,omitempty" yaml:"status,omitempty"`
	Body   any `json:"body,omitempty" yaml:"body,omitempty"`
}

// Load reads and parses a fixture file.
func Load(path string) ([]stub.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses fixture content into stub configurations.
func Parse(data []byte) ([]stub.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture: parse: %w", err)
	}

	configs := make([]stub.Config, 0, len(f.Stubs))
	for i, s := range f.Stubs {
		cfg, err := s.toConfig()
		if err != nil {
			return nil, fmt.Errorf("fixture: stub %s: %w", s.label(i), err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// RegisterAll registers every configuration against the manager's engine,
// returning the handles in declaration order.
func RegisterAll(m *registry.Manager, configs []stub.Config) ([]*stub.Handle, error) {
	handles := make([]*stub.Handle, 0, len(configs))
	for _, cfg := range configs {
		h, err := stub.Register(m, cfg)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (s Stub) label(i int) string {
	if s.Name != "" {
		return fmt.Sprintf("%q", s.Name)
	}
	return fmt.Sprintf("#%d", i)
}

func (s Stub) toConfig() (stub.Config, error) {
	method, err := stub.ParseMethod(s.Method)
	if err != nil {
		return stub.Config{}, err
	}

	cfg := stub.Config{
		Pattern: s.Route,
		Method:  method,
		Headers: s.Headers,
	}

	if s.Body != nil {
		cfg.Response = stub.Static(s.Body)
	}
	if s.Status != 0 {
		cfg.Status = stub.Static(s.Status)
	}
	if s.Delay != "" {
		d, err := time.ParseDuration(s.Delay)
		if err != nil {
			return stub.Config{}, fmt.Errorf("invalid delay %q: %w", s.Delay, err)
		}
		cfg.Delay = d
	}

	for _, e := range s.Sequence {
		cfg.Sequence = append(cfg.Sequence, stub.SequenceEntry{
			Response: e.Body,
			Status:   e.Status,
		})
	}

	if s.Schema != nil {
		schema, err := schemaSource(s.Schema)
		if err != nil {
			return stub.Config{}, err
		}
		cfg.BodySchema = schema
	}

	return cfg, nil
}

// schemaSource normalizes an inline schema to its JSON source text.
func schemaSource(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode schema: %w", err)
	}
	return string(data), nil
}
