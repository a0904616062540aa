package stub

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/httpstub/httpstub/internal/bodyparse"
	"github.com/httpstub/httpstub/pkg/engine"
	"github.com/httpstub/httpstub/pkg/httputil"
	"github.com/httpstub/httpstub/pkg/recorder"
	"github.com/httpstub/httpstub/pkg/registry"
	"github.com/httpstub/httpstub/pkg/validation"
)

// Handle is the per-registration view a test holds for assertions. Each
// registration owns its own call counter and call log, even when the same
// pattern and method are registered more than once.
type Handle struct {
	// ID uniquely identifies this registration.
	ID string

	cfg       Config
	log       *recorder.Log
	validator *validation.Validator

	// mu serializes request handling for this stub so the call index
	// observed by a responder and the subsequent counter increment form one
	// atomic step.
	mu    sync.Mutex
	count int
}

// Register binds a route stub to the engine held by the manager. Passing a
// nil manager uses registry.Default. It fails when no engine is configured
// or the pattern does not compile.
func Register(m *registry.Manager, cfg Config) (*Handle, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = registry.Default
	}

	srv, err := m.Server()
	if err != nil {
		return nil, err
	}

	h := &Handle{
		ID:  uuid.NewString(),
		cfg: cfg,
		log: recorder.NewLog(),
	}
	if cfg.BodySchema != "" {
		h.validator = validation.New(cfg.BodySchema)
	}

	if err := srv.Handle(cfg.Method.String(), cfg.Pattern, h.handle); err != nil {
		return nil, err
	}
	return h, nil
}

// handle processes one intercepted request matched to this stub.
func (h *Handle) handle(r *http.Request, params map[string]string) (*engine.Result, error) {
	var data []byte
	if r.Body != nil {
		var err error
		data, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		// Rewind so callers of Call.Raw can read the body again.
		r.Body = httputil.NewBodyReader(data)
	}

	// A malformed body under a declared application/json content type is a
	// hard failure: the request is neither recorded nor counted.
	body, err := bodyparse.Parse(r.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	call := &recorder.Call{
		URL:     r.URL.String(),
		Method:  r.Method,
		Body:    body,
		Headers: normalizeHeaders(r.Header),
		Params:  params,
		Index:   h.count,
		Raw:     r,
	}
	// Recorded before the response is computed, so a failing responder
	// still leaves the call visible to assertions.
	h.log.Record(call)

	if h.validator != nil {
		if verr := h.validator.Validate(body); verr != nil {
			var invalid *validation.Error
			if !errors.As(verr, &invalid) {
				return nil, verr
			}
			h.count++
			return &engine.Result{
				Status: http.StatusBadRequest,
				Body: map[string]any{
					"error":   "validation_failed",
					"message": invalid.Error(),
				},
				Headers: h.cfg.Headers,
				Delay:   h.cfg.Delay,
			}, nil
		}
	}

	var (
		response any
		status   int
	)
	if len(h.cfg.Sequence) > 0 {
		response, status = selectEntry(h.cfg.Sequence, call.Index)
	} else {
		if h.cfg.Response != nil {
			response, err = h.cfg.Response.Resolve(call)
			if err != nil {
				return nil, err
			}
		}
		status, err = resolveStatus(h.cfg.Status, call)
		if err != nil {
			return nil, err
		}
	}

	// Incremented only after the response is computed: the counter advances
	// once per fully-handled request.
	h.count++

	return &engine.Result{
		Status:  status,
		Body:    response,
		Headers: h.cfg.Headers,
		Delay:   h.cfg.Delay,
	}, nil
}

// Calls returns every recorded call, oldest first.
func (h *Handle) Calls() []*recorder.Call {
	return h.log.All()
}

// Call returns the i-th recorded call, or nil when out of range.
func (h *Handle) Call(i int) *recorder.Call {
	return h.log.Call(i)
}

// CallCount returns the number of recorded calls.
func (h *Handle) CallCount() int {
	return h.log.Count()
}

// Log exposes the underlying call log for filtered queries.
func (h *Handle) Log() *recorder.Log {
	return h.log
}

// Pattern returns the registered route pattern.
func (h *Handle) Pattern() string { return h.cfg.Pattern }

// Method returns the registered method.
func (h *Handle) Method() Method { return h.cfg.Method }

// normalizeHeaders flattens request headers into a lower-cased-key map.
// Multi-valued headers are joined with ", ".
func normalizeHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}
