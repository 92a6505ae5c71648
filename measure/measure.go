// Package measure collects opt-in size and attempt counters. Counting is
// enabled with MEASURE_SIZES=1; otherwise every call is a no-op.
package measure

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

var Enabled bool
var Global *Counter

func init() {
	Enabled = os.Getenv("MEASURE_SIZES") == "1"
	Global = NewCounter()
}

// Human renders a byte count.
func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Counter accumulates named totals and how many times each was hit.
type Counter struct {
	mu   sync.Mutex
	M    map[string]int64
	Hits map[string]int64
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{M: make(map[string]int64), Hits: make(map[string]int64)}
}

// Add records n under key when measurement is enabled.
func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.Hits[key]++
	c.mu.Unlock()
}

// Mean returns the average value recorded under key.
func (c *Counter) Mean(key string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Hits[key] == 0 {
		return 0
	}
	return float64(c.M[key]) / float64(c.Hits[key])
}

// SnapshotAndReset returns the totals and clears the counter.
func (c *Counter) SnapshotAndReset() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.M))
	for k, v := range c.M {
		out[k] = v
	}
	c.M = make(map[string]int64)
	c.Hits = make(map[string]int64)
	return out
}

// Dump writes a sorted report to w.
func (c *Counter) Dump(w io.Writer) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.M))
	for k := range c.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, "[measure] Size report:")
	for _, k := range keys {
		fmt.Fprintf(w, "[measure] %s = %d (%d hits)\n", k, c.M[k], c.Hits[k])
	}
}

// Section brackets f with begin/end markers when enabled.
func Section(name string, f func()) {
	if !Enabled {
		f()
		return
	}
	fmt.Printf("[measure] Begin %s\n", name)
	f()
	fmt.Printf("[measure] End %s\n", name)
}
