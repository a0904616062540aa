package stub

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/httpstub/httpstub/pkg/recorder"
)

// Responder produces the concrete response (or status) value for one call.
// Resolution must be pure: no retries are performed and a returned error
// fails the request being handled.
type Responder interface {
	Resolve(call *recorder.Call) (any, error)
}

// Static returns v unchanged for every call.
func Static(v any) Responder {
	return staticResponder{v: v}
}

type staticResponder struct{ v any }

func (s staticResponder) Resolve(*recorder.Call) (any, error) {
	return s.v, nil
}

// Func computes the value from the call context. The call reflects the
// request that triggered it, including its zero-based Index.
func Func(fn func(call *recorder.Call) (any, error)) Responder {
	return funcResponder{fn: fn}
}

type funcResponder struct {
	fn func(call *recorder.Call) (any, error)
}

func (f funcResponder) Resolve(call *recorder.Call) (any, error) {
	if f.fn == nil {
		return nil, errors.New("stub: nil responder function")
	}
	return f.fn(call)
}

// Expr computes the value by evaluating an expr expression against the call
// context. The environment exposes url, method, body, headers, params and
// callIndex. The expression is compiled once, on first use; compile and
// runtime failures fail the request like a failing Func.
//
//	stub.Expr(`{"id": params.id, "attempt": callIndex + 1}`)
func Expr(src string) Responder {
	return &exprResponder{src: src}
}

type exprResponder struct {
	src string

	once       sync.Once
	prog       *vm.Program
	compileErr error
}

func (e *exprResponder) Resolve(call *recorder.Call) (any, error) {
	e.once.Do(func() {
		e.prog, e.compileErr = expr.Compile(e.src)
	})
	if e.compileErr != nil {
		return nil, fmt.Errorf("stub: compile expression %q: %w", e.src, e.compileErr)
	}

	env := map[string]any{
		"url":       call.URL,
		"method":    call.Method,
		"body":      call.Body,
		"headers":   call.Headers,
		"params":    call.Params,
		"callIndex": call.Index,
	}
	out, err := expr.Run(e.prog, env)
	if err != nil {
		return nil, fmt.Errorf("stub: evaluate expression %q: %w", e.src, err)
	}
	return out, nil
}

// resolveStatus resolves a status responder to an integer status code.
// A nil responder, or one resolving to nil, yields 200.
func resolveStatus(r Responder, call *recorder.Call) (int, error) {
	if r == nil {
		return http.StatusOK, nil
	}

	v, err := r.Resolve(call)
	if err != nil {
		return 0, err
	}

	switch status := v.(type) {
	case nil:
		return http.StatusOK, nil
	case int:
		return status, nil
	case int64:
		return int(status), nil
	case float64:
		return int(status), nil
	default:
		return 0, fmt.Errorf("stub: status resolved to %T, want integer", v)
	}
}
