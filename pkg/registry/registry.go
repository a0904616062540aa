// Package registry holds the interception-engine handle shared by stub
// registrations.
//
// A Manager is an explicit, injectable slot for one engine handle or a lazy
// loader for it, with an explicit Reset for isolation between test cases. A
// package-level Default manager is provided for tests that don't need to
// thread their own through.
package registry

import (
	"errors"
	"sync"

	"github.com/httpstub/httpstub/pkg/engine"
)

// ErrNotConfigured is returned by Manager.Server when neither a handle nor a
// loader has been set.
var ErrNotConfigured = errors.New("no server configured: call SetServer or SetDefaultServerLoader before registering stubs")

// Loader is a zero-argument factory for an engine handle, invoked lazily on
// first use.
type Loader func() engine.Interceptor

// Manager is a single slot holding an engine handle and/or a loader for one.
// It is safe for concurrent use, though tests are expected to mutate it in
// setup/teardown hooks rather than concurrently with request handling.
type Manager struct {
	mu     sync.Mutex
	server engine.Interceptor
	loader Loader
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Default is the process-wide manager used when no explicit one is passed.
var Default = NewManager()

// SetServer stores the handle directly. A directly-set handle takes
// precedence over any loader.
func (m *Manager) SetServer(s engine.Interceptor) {
	m.mu.Lock()
	m.server = s
	m.mu.Unlock()
}

// SetDefaultServerLoader stores a factory invoked lazily by the first
// Server call. The loader runs at most once per cycle between Resets; its
// result is cached as the handle.
func (m *Manager) SetDefaultServerLoader(fn Loader) {
	m.mu.Lock()
	m.loader = fn
	m.mu.Unlock()
}

// Server returns the stored handle, invoking and caching the loader when no
// handle has been set yet. It returns ErrNotConfigured when neither is
// present.
func (m *Manager) Server() (engine.Interceptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.server != nil {
		return m.server, nil
	}
	if m.loader != nil {
		m.server = m.loader()
		return m.server, nil
	}
	return nil, ErrNotConfigured
}

// HasServer reports whether a handle or loader is present. It never forces
// the loader to run.
func (m *Manager) HasServer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.server != nil || m.loader != nil
}

// Reset clears both the handle and the loader, typically between test cases.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.server = nil
	m.loader = nil
	m.mu.Unlock()
}
