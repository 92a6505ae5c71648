package measureutil

import (
	"fmt"
	"io"
	"sort"

	"ntrumls-signature/measure"
)

// SnapshotAndReset returns the global measurement map and clears it.
func SnapshotAndReset() map[string]int64 {
	return measure.Global.SnapshotAndReset()
}

// WriteSnapshot prints a snapshot as "key value" lines, sorted, with sizes
// rendered for keys that count bytes.
func WriteSnapshot(w io.Writer, label string, snap map[string]int64) {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s %s %d (%s)\n", label, k, snap[k], measure.Human(snap[k]))
	}
}
