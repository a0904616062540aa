// Package engine implements the in-process interception engine that route
// stubs register with.
//
// Engine is an http.RoundTripper: inject it as the Transport of the
// http.Client used by the code under test (or use Engine.Client()) and every
// outbound request is dispatched to the most recently registered matching
// route instead of the network. Handlers return a value that the engine
// JSON-encodes into the response body, together with a status code.
//
// Requests that match no registered route fail the round trip with an error,
// so an unstubbed call surfaces immediately as a test failure rather than
// hitting the real network.
package engine
