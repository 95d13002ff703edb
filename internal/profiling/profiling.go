package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timings keyed by "package.Operation".

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.FillOffsetCache")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCalls[name]++
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// Entry is one tracked name with its accumulated time this frame.
type Entry struct {
	Name  string
	Total time.Duration
	Calls int
}

// Snapshot returns the current frame entries, slowest first.
func Snapshot() []Entry {
	mu.Lock()
	out := make([]Entry, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Entry{Name: k, Total: v, Calls: frameCalls[k]})
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n slowest entries of the current frame.
// Example: "voxels.Render:4.2ms, world.FillOffsetCache:2.1ms(x2)"
func TopN(n int) string {
	list := Snapshot()
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		s := e.Name + ":" + formatMs(e.Total)
		if e.Calls > 1 {
			s += fmt.Sprintf("(x%d)", e.Calls)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000.0)
	return strings.TrimSuffix(s, ".0") + "ms"
}
