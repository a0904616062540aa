package stub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectEntry(t *testing.T) {
	seq := []SequenceEntry{
		{Response: "first", Status: 500},
		{Response: "second", Status: 502},
		{Response: "third"},
	}

	tests := []struct {
		name       string
		callIndex  int
		wantBody   any
		wantStatus int
	}{
		{name: "first call", callIndex: 0, wantBody: "first", wantStatus: 500},
		{name: "second call", callIndex: 1, wantBody: "second", wantStatus: 502},
		{name: "third call defaults to 200", callIndex: 2, wantBody: "third", wantStatus: 200},
		{name: "past the end clamps to last", callIndex: 3, wantBody: "third", wantStatus: 200},
		{name: "far past the end still clamps", callIndex: 100, wantBody: "third", wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status := selectEntry(seq, tt.callIndex)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestSelectEntrySingle(t *testing.T) {
	seq := []SequenceEntry{{Response: "only", Status: 503}}

	for i := 0; i < 5; i++ {
		body, status := selectEntry(seq, i)
		assert.Equal(t, "only", body)
		assert.Equal(t, 503, status)
	}
}
