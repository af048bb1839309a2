package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-run stage profiler.

// Recorder accumulates elapsed time per named stage. The zero value is ready
// to use and safe for concurrent Track calls.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	order  []string
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer rec.Track("terrain.Generate")()
// A nil recorder tracks nothing.
func (r *Recorder) Track(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		r.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	if r.totals == nil {
		r.totals = make(map[string]time.Duration)
	}
	if _, ok := r.totals[name]; !ok {
		r.order = append(r.order, name)
	}
	r.totals[name] += d
	r.mu.Unlock()
}

// Reset clears all recorded stages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	clear(r.totals)
	r.order = r.order[:0]
	r.mu.Unlock()
}

// Snapshot returns a copy of current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// Stages returns the stage names in the order they were first recorded.
func (r *Recorder) Stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Total returns the sum over all stages.
func (r *Recorder) Total() time.Duration {
	var sum time.Duration
	for _, d := range r.Snapshot() {
		sum += d
	}
	return sum
}

// TopN formats top N durations, longest first.
// Example: "terrain.Generate:41.2ms, export.WriteFile:12ms"
func (r *Recorder) TopN(n int) string {
	ss := r.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+FormatDuration(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// FormatDuration renders d in milliseconds, truncated to one decimal.
func FormatDuration(d time.Duration) string {
	tenths := d.Microseconds() / 100
	s := strconv.FormatInt(tenths/10, 10)
	if frac := tenths % 10; frac > 0 {
		s += "." + strconv.FormatInt(frac, 10)
	}
	return s + "ms"
}
