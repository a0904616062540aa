package stub

import (
	"errors"
	"fmt"
	"time"
)

// SequenceEntry is one step of an ordered response override list.
type SequenceEntry struct {
	// Response is the value emitted for this step.
	Response any

	// Status is the HTTP status for this step. Zero means 200.
	Status int
}

// Config declares one route stub.
type Config struct {
	// Pattern is the route pattern: "*" wildcard, ":name" path parameters,
	// exact match otherwise.
	Pattern string

	// Method is the HTTP method to match. ALL matches every method.
	Method Method

	// Response produces the response value. Ignored for the stub's entire
	// lifetime when Sequence is non-empty. Nil means an empty body.
	Response Responder

	// Status produces the status code; it must resolve to an integer.
	// Nil means 200.
	Status Responder

	// Sequence, when non-empty, overrides Response/Status entirely: entry i
	// answers call i, and the final entry answers every call past the end.
	Sequence []SequenceEntry

	// Headers are static response headers added to every response.
	Headers map[string]string

	// Delay is slept before each response.
	Delay time.Duration

	// BodySchema is an optional JSON Schema source; request bodies failing
	// it get a 400 error response instead of the configured one.
	BodySchema string
}

func (c *Config) validate() error {
	if c.Pattern == "" {
		return errors.New("stub: missing route pattern")
	}
	if !c.Method.Valid() {
		return fmt.Errorf("stub: unsupported method %q", string(c.Method))
	}
	return nil
}
