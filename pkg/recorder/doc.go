// Package recorder captures the requests matched by a route stub so tests
// can assert on them.
//
// Call is the central type: an immutable snapshot of one intercepted request
// (URL, method, parsed body, lower-cased headers, extracted path parameters
// and the zero-based call index), plus a reference to the raw *http.Request
// for callers that need it.
//
// Log is the append-only in-memory store, one per stub registration. Stub
// handlers depend only on the narrow Recorder interface, so tests can swap
// in their own sink.
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package recorder
