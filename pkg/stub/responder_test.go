package stub

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/httpstub/httpstub/pkg/recorder"
)

func TestStatic(t *testing.T) {
	r := Static(map[string]string{"ok": "yes"})

	v, err := r.Resolve(&recorder.Call{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ok": "yes"}, v)

	// Same value on every call.
	again, err := r.Resolve(&recorder.Call{Index: 7})
	require.NoError(t, err)
	assert.Equal(t, v, again)
}

func TestFunc(t *testing.T) {
	r := Func(func(call *recorder.Call) (any, error) {
		return map[string]any{"index": call.Index, "id": call.Params["id"]}, nil
	})

	v, err := r.Resolve(&recorder.Call{Index: 2, Params: map[string]string{"id": "42"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"index": 2, "id": "42"}, v)
}

func TestFuncError(t *testing.T) {
	r := Func(func(*recorder.Call) (any, error) { return nil, assert.AnError })
	_, err := r.Resolve(&recorder.Call{})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = Func(nil).Resolve(&recorder.Call{})
	assert.Error(t, err)
}

func TestExpr(t *testing.T) {
	r := Expr(`{"attempt": callIndex + 1, "id": params.id}`)

	v, err := r.Resolve(&recorder.Call{Index: 1, Params: map[string]string{"id": "9"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"attempt": 2, "id": "9"}, v)
}

func TestExprUsesBodyAndHeaders(t *testing.T) {
	r := Expr(`body.name + "/" + headers["x-tenant"] + "/" + method`)

	v, err := r.Resolve(&recorder.Call{
		Method:  "POST",
		Body:    map[string]any{"name": "John"},
		Headers: map[string]string{"x-tenant": "acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "John/acme/POST", v)
}

func TestExprCompileError(t *testing.T) {
	r := Expr(`1 +`)
	_, err := r.Resolve(&recorder.Call{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile expression")

	// Sticky across calls.
	_, err = r.Resolve(&recorder.Call{})
	assert.Error(t, err)
}

func TestResolveStatus(t *testing.T) {
	call := &recorder.Call{}

	status, err := resolveStatus(nil, call)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	status, err = resolveStatus(Static(503), call)
	require.NoError(t, err)
	assert.Equal(t, 503, status)

	status, err = resolveStatus(Static(float64(404)), call)
	require.NoError(t, err)
	assert.Equal(t, 404, status)

	status, err = resolveStatus(Static(nil), call)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	_, err = resolveStatus(Static("teapot"), call)
	assert.Error(t, err)

	_, err = resolveStatus(Func(func(*recorder.Call) (any, error) { return nil, assert.AnError }), call)
	assert.ErrorIs(t, err, assert.AnError)
}
