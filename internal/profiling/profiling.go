package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates named durations for the current frame. It is safe
// for use from several goroutines.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	frames uint64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{totals: make(map[string]time.Duration)}
}

var std = NewRecorder()

// Track returns a stop function that adds the elapsed time under name.
// Usage: defer profiling.Track("terrain.Regenerate")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() {
		r.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	r.totals[name] += d
	r.mu.Unlock()
}

// ResetFrame clears the totals. Call at the start of each frame.
func (r *Recorder) ResetFrame() {
	r.mu.Lock()
	clear(r.totals)
	r.frames++
	r.mu.Unlock()
}

// Frames returns how many frames have been started.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Snapshot returns a copy of the current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every total whose name starts with prefix.
func (r *Recorder) SumWithPrefix(prefix string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for k, v := range r.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals, longest first, e.g.
// "terrain.Regenerate:4.2ms, render.Draw:0.3ms".
func (r *Recorder) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := r.Snapshot()
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
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	s := strconv.FormatInt(tenths/10, 10)
	if frac := tenths % 10; frac != 0 {
		s += "." + strconv.FormatInt(frac, 10)
	}
	return s + "ms"
}

// Track records into the process-wide recorder.
func Track(name string) func() { return std.Track(name) }

// ResetFrame resets the process-wide recorder.
func ResetFrame() { std.ResetFrame() }

// Snapshot copies the process-wide totals.
func Snapshot() map[string]time.Duration { return std.Snapshot() }

// SumWithPrefix sums process-wide totals by name prefix.
func SumWithPrefix(prefix string) time.Duration { return std.SumWithPrefix(prefix) }

// TopN formats the largest process-wide totals.
func TopN(n int) string { return std.TopN(n) }
