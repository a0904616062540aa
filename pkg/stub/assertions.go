package stub

import "testing"

// AssertCalled asserts that the stub was matched at least once.
func (h *Handle) AssertCalled(t testing.TB) {
	t.Helper()
	if h.CallCount() == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", h.cfg.Method, h.cfg.Pattern)
	}
}

// AssertCalledTimes asserts that the stub was matched exactly n times.
func (h *Handle) AssertCalledTimes(t testing.TB, n int) {
	t.Helper()
	if count := h.CallCount(); count != n {
		t.Errorf("expected %s %s to be called %d times, but was called %d times",
			h.cfg.Method, h.cfg.Pattern, n, count)
	}
}

// AssertNotCalled asserts that the stub was never matched.
func (h *Handle) AssertNotCalled(t testing.TB) {
	t.Helper()
	if count := h.CallCount(); count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times",
			h.cfg.Method, h.cfg.Pattern, count)
	}
}
