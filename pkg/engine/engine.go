package engine

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/httpstub/httpstub/internal/routepattern"
	"github.com/httpstub/httpstub/pkg/httputil"
	"github.com/httpstub/httpstub/pkg/logging"
)

// MethodAll registers a route for every HTTP method.
const MethodAll = "ALL"

// Result is what a route handler produces for one intercepted request.
type Result struct {
	// Status is the HTTP status code to emit.
	Status int

	// Body is JSON-encoded into the response body. A nil body yields an
	// empty response.
	Body any

	// Headers are additional response headers.
	Headers map[string]string

	// Delay is slept before the response is returned, honoring request
	// cancellation.
	Delay time.Duration
}

// HandlerFunc handles one intercepted request. params holds the path
// parameters captured by the route pattern. Returning an error fails the
// round trip, which the code under test observes as a request failure.
type HandlerFunc func(r *http.Request, params map[string]string) (*Result, error)

// Middleware runs before route dispatch for every intercepted request.
// Returning a non-nil Result short-circuits dispatch; returning an error
// fails the round trip.
type Middleware func(r *http.Request) (*Result, error)

// Interceptor is the registration surface of the engine, the part stub
// registration needs. Implemented by *Engine.
type Interceptor interface {
	Handle(method, pattern string, h HandlerFunc) error
	Use(mw ...Middleware)
}

type route struct {
	method  string
	pattern *routepattern.Pattern
	handler HandlerFunc
}

// Engine dispatches intercepted requests to registered routes.
// It is safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	routes     []*route
	middleware []Middleware
	log        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the operational logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{log: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle registers a route. Method must be an HTTP method name or MethodAll;
// the pattern follows the stub route syntax ("*" wildcard, ":name" params).
// Later registrations take precedence over earlier ones when both match.
func (e *Engine) Handle(method, pattern string, h HandlerFunc) error {
	if method == "" {
		return fmt.Errorf("engine: missing method for route %q", pattern)
	}
	if h == nil {
		return fmt.Errorf("engine: nil handler for route %q", pattern)
	}

	p, err := routepattern.Compile(pattern)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.routes = append(e.routes, &route{
		method:  strings.ToUpper(method),
		pattern: p,
		handler: h,
	})
	e.mu.Unlock()

	e.log.Debug("route registered", "method", method, "pattern", pattern)
	return nil
}

// Use appends pre-dispatch middleware, run in registration order.
func (e *Engine) Use(mw ...Middleware) {
	e.mu.Lock()
	e.middleware = append(e.middleware, mw...)
	e.mu.Unlock()
}

// Reset clears all routes and middleware.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.routes = nil
	e.middleware = nil
	e.mu.Unlock()
}

// Routes returns the number of registered routes.
func (e *Engine) Routes() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.routes)
}

// Client returns an *http.Client whose Transport is this engine.
func (e *Engine) Client() *http.Client {
	return &http.Client{Transport: e}
}

// RoundTrip implements http.RoundTripper.
func (e *Engine) RoundTrip(req *http.Request) (*http.Response, error) {
	// Buffer the body so the handler and the call recorder see the same
	// bytes regardless of how often it is read downstream.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("engine: read request body: %w", err)
		}
		req.Body = httputil.NewBodyReader(body)
	}

	e.mu.RLock()
	middleware := make([]Middleware, len(e.middleware))
	copy(middleware, e.middleware)
	e.mu.RUnlock()

	for _, mw := range middleware {
		res, err := mw(req)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return e.respond(req, res)
		}
	}

	rt, params := e.match(req)
	if rt == nil {
		e.log.Debug("no route matched", "method", req.Method, "url", req.URL)
		return nil, fmt.Errorf("engine: no stub registered for %s %s", req.Method, req.URL)
	}

	if body != nil {
		req.Body = httputil.NewBodyReader(body)
	}
	res, err := rt.handler(req, params)
	if err != nil {
		return nil, err
	}
	e.log.Debug("route matched", "method", req.Method, "url", req.URL, "status", res.Status)
	return e.respond(req, res)
}

// match scans routes most recently registered first. Patterns are tried
// against the full URL, then the URL without query and fragment, then the
// bare path, so both full-URL stubs and path-only stubs work.
func (e *Engine) match(req *http.Request) (*route, map[string]string) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := len(e.routes) - 1; i >= 0; i-- {
		rt := e.routes[i]
		if rt.method != MethodAll && rt.method != req.Method {
			continue
		}
		if params, ok := matchURL(rt.pattern, req.URL); ok {
			return rt, params
		}
	}
	return nil, nil
}

func matchURL(p *routepattern.Pattern, u *url.URL) (map[string]string, bool) {
	if params, ok := p.Match(u.String()); ok {
		return params, true
	}
	if u.RawQuery != "" || u.Fragment != "" {
		stripped := *u
		stripped.RawQuery = ""
		stripped.Fragment = ""
		if params, ok := p.Match(stripped.String()); ok {
			return params, true
		}
	}
	return p.Match(u.Path)
}

func (e *Engine) respond(req *http.Request, res *Result) (*http.Response, error) {
	if res.Delay > 0 {
		select {
		case <-time.After(res.Delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}

	resp, err := httputil.NewJSONResponse(req, status, res.Body)
	if err != nil {
		return nil, err
	}
	for k, v := range res.Headers {
		resp.Header.Set(k, v)
	}
	return resp, nil
}
