package stub

import "net/http"

// selectEntry picks the sequence entry answering the given call index.
// Selection clamps to the final entry: once the index reaches or passes the
// last valid position, every further call repeats that entry. This is the
// intended steady state ("eventually succeeds and stays succeeded"), not a
// wrap-around.
func selectEntry(seq []SequenceEntry, callIndex int) (any, int) {
	i := callIndex
	if i > len(seq)-1 {
		i = len(seq) - 1
	}

	entry := seq[i]
	status := entry.Status
	if status == 0 {
		status = http.StatusOK
	}
	return entry.Response, status
}
