// Package profiling provides an explicitly-scoped query-timing collector.
// The replay core stays instrumentation-free; callers that want timings wrap
// their query calls with a Collector and pass it wherever they need it. The
// collector keeps only the most recent observations per operation in a
// fixed-capacity ring buffer, so long replay sessions cannot grow it without
// bound.
package profiling

import (
	"sort"
	"time"
)

// DefaultCapacity is the per-operation ring size used when the caller does
// not specify one.
const DefaultCapacity = 256

// Collector accumulates durations per named operation. It is not
// synchronized: the replay loop is single-threaded, and a caller that
// profiles from several goroutines should use one Collector per goroutine.
type Collector struct {
	capacity int
	rings    map[string]*ring
}

// ring is a fixed-capacity sliding window of durations.
type ring struct {
	buf   []time.Duration
	head  int // next write position
	size  int
	total int // observations ever recorded
}

// NewCollector returns a collector keeping at most capacity observations per
// operation. Capacity below 1 falls back to DefaultCapacity.
func NewCollector(capacity int) *Collector {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Collector{capacity: capacity, rings: map[string]*ring{}}
}

// Observe records one duration for the named operation, evicting the oldest
// observation once the ring is full.
func (c *Collector) Observe(op string, d time.Duration) {
	r, ok := c.rings[op]
	if !ok {
		r = &ring{buf: make([]time.Duration, c.capacity)}
		c.rings[op] = r
	}
	r.buf[r.head] = d
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
	r.total++
}

// Time starts a timer for the named operation and returns a function that
// records the elapsed duration:
//
//	defer c.Time("interpolate")()
func (c *Collector) Time(op string) func() {
	start := time.Now()
	return func() { c.Observe(op, time.Since(start)) }
}

// OpStats summarises the retained window of one operation.
type OpStats struct {
	Op    string
	Total int           // observations ever recorded
	Kept  int           // observations currently in the window
	Mean  time.Duration // over the kept window
	Max   time.Duration // over the kept window
}

// Summary returns per-operation statistics, ordered by operation name.
func (c *Collector) Summary() []OpStats {
	ops := make([]string, 0, len(c.rings))
	for op := range c.rings {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	out := make([]OpStats, 0, len(ops))
	for _, op := range ops {
		r := c.rings[op]
		var sum, max time.Duration
		for i := 0; i < r.size; i++ {
			d := r.buf[i]
			sum += d
			if d > max {
				max = d
			}
		}
		st := OpStats{Op: op, Total: r.total, Kept: r.size, Max: max}
		if r.size > 0 {
			st.Mean = sum / time.Duration(r.size)
		}
		out = append(out, st)
	}
	return out
}

// Reset discards all recorded observations.
func (c *Collector) Reset() {
	c.rings = map[string]*ring{}
}
