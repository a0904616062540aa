// Package stub registers route stubs: declarative "requests matching this
// route return this JSON" rules for automated tests, with every matched
// request recorded for assertions.
//
// A stub is declared either with a Config passed to Register, or with the
// fluent builder:
//
//	m := registry.NewManager()
//	m.SetServer(eng)
//
//	users := stub.New(stub.GET, "*/api/users/:id").
//	    WithJSON(map[string]any{"name": "John"}).
//	    WithManager(m).
//	    MustRegister()
//
//	// ... code under test performs requests through eng.Client() ...
//
//	users.AssertCalledTimes(t, 1)
//	call := users.Call(0)
//
// Responses can be a static value, computed per call by a Go function or an
// expr expression, or drawn from an ordered sequence that is consumed one
// entry per call and repeats its final entry once exhausted.
package stub
