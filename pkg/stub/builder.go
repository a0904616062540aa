package stub

import (
	"fmt"
	"time"

	"github.com/httpstub/httpstub/pkg/recorder"
	"github.com/httpstub/httpstub/pkg/registry"
)

// Builder assembles a stub Config with a fluent API. The first error
// encountered while building wins and is returned by Register.
type Builder struct {
	manager *registry.Manager
	cfg     Config
	err     error
}

// New starts a builder for the given method and route pattern.
func New(method Method, pattern string) *Builder {
	return &Builder{cfg: Config{Method: method, Pattern: pattern}}
}

func (b *Builder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// WithManager sets the registry the stub registers against.
// Defaults to registry.Default.
func (b *Builder) WithManager(m *registry.Manager) *Builder {
	b.manager = m
	return b
}

// WithStatus sets a static response status. Default is 200.
func (b *Builder) WithStatus(status int) *Builder {
	b.cfg.Status = Static(status)
	return b
}

// WithJSON sets a static response value, emitted JSON-encoded.
func (b *Builder) WithJSON(v any) *Builder {
	b.cfg.Response = Static(v)
	return b
}

// WithResponse sets the response responder directly.
func (b *Builder) WithResponse(r Responder) *Builder {
	b.cfg.Response = r
	return b
}

// WithResponseFunc sets a response computed per call.
func (b *Builder) WithResponseFunc(fn func(call *recorder.Call) (any, error)) *Builder {
	b.cfg.Response = Func(fn)
	return b
}

// WithStatusFunc sets a status computed per call; it must resolve to an
// integer.
func (b *Builder) WithStatusFunc(fn func(call *recorder.Call) (any, error)) *Builder {
	b.cfg.Status = Func(fn)
	return b
}

// WithExpr sets a response computed by an expr expression over the call
// context.
func (b *Builder) WithExpr(src string) *Builder {
	b.cfg.Response = Expr(src)
	return b
}

// WithSequence sets the ordered response override list. It takes precedence
// over any response/status configured on the builder.
func (b *Builder) WithSequence(entries ...SequenceEntry) *Builder {
	b.cfg.Sequence = entries
	return b
}

// WithHeader adds a static response header.
func (b *Builder) WithHeader(key, value string) *Builder {
	if b.cfg.Headers == nil {
		b.cfg.Headers = make(map[string]string)
	}
	b.cfg.Headers[key] = value
	return b
}

// WithDelay adds a response delay from a duration string like "100ms".
func (b *Builder) WithDelay(delay string) *Builder {
	d, err := time.ParseDuration(delay)
	if err != nil {
		b.setError(fmt.Errorf("stub: invalid delay %q: %w", delay, err))
		return b
	}
	b.cfg.Delay = d
	return b
}

// WithBodySchema sets a JSON Schema that request bodies must satisfy.
func (b *Builder) WithBodySchema(schema string) *Builder {
	b.cfg.BodySchema = schema
	return b
}

// Register registers the built stub and returns its handle.
func (b *Builder) Register() (*Handle, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Register(b.manager, b.cfg)
}

// MustRegister is Register, panicking on error. Intended for test setup
// where a broken stub declaration should abort immediately.
func (b *Builder) MustRegister() *Handle {
	h, err := b.Register()
	if err != nil {
		panic(err)
	}
	return h
}
