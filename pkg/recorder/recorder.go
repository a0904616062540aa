package recorder

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
)

// Call is one recorded request matched by a route stub.
// It is immutable once recorded; a fresh Call is built per intercepted
// request.
type Call struct {
	// ID is a unique identifier for the record.
	ID string

	// Time is when the request was intercepted.
	Time time.Time

	// URL is the full request URL.
	URL string

	// Method is the HTTP method.
	Method string

	// Body is the parsed request body (nil when absent or unparseable).
	Body any

	// Headers maps lower-cased header names to their values.
	// Multi-valued headers are joined with ", ".
	Headers map[string]string

	// Params holds path parameters captured by the route pattern.
	Params map[string]string

	// Index is the zero-based ordinal of this request among all requests
	// matched by the same stub registration.
	Index int

	// Raw is the original intercepted request, for callers needing access
	// beyond the parsed snapshot.
	Raw *http.Request
}

// BodyPath evaluates a JSONPath expression against the parsed body.
// It returns nil when nothing matches, the single value when exactly one
// node matches, and a slice of values otherwise.
func (c *Call) BodyPath(path string) (any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: invalid JSONPath %q: %w", path, err)
	}

	results := x.Get(c.Body)
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// Recorder is the minimal interface a stub handler needs: record one call.
type Recorder interface {
	Record(call *Call)
}

// Filter selects a subset of recorded calls.
type Filter struct {
	// Method filters by HTTP method.
	Method string

	// URLContains filters by URL substring.
	URLContains string
}

// Log is an append-only in-memory call log.
// It is safe for concurrent use.
type Log struct {
	mu    sync.RWMutex
	calls []*Call
}

// NewLog creates an empty call log.
func NewLog() *Log {
	return &Log{}
}

// Record appends a call to the log, assigning an ID and timestamp if unset.
func (l *Log) Record(call *Call) {
	if call == nil {
		return
	}
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	if call.Time.IsZero() {
		call.Time = time.Now()
	}

	l.mu.Lock()
	l.calls = append(l.calls, call)
	l.mu.Unlock()
}

// Call returns the i-th recorded call (oldest first), or nil when out of
// range.
func (l *Log) Call(i int) *Call {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.calls) {
		return nil
	}
	return l.calls[i]
}

// All returns a copy of every recorded call, oldest first.
func (l *Log) All() []*Call {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// List returns the recorded calls matching the filter, oldest first.
// A nil filter returns everything.
func (l *Log) List(f *Filter) []*Call {
	if f == nil {
		return l.All()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*Call
	for _, c := range l.calls {
		if f.Method != "" && !strings.EqualFold(f.Method, c.Method) {
			continue
		}
		if f.URLContains != "" && !strings.Contains(c.URL, f.URLContains) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Count returns the number of recorded calls.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.calls)
}

// Clear removes all recorded calls.
func (l *Log) Clear() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
}
