// Package diag keeps process-wide instance counters keyed by node kind.
// Counters are diagnostic only and never influence tree behavior.
package diag

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v4"
)

// Default is the process-wide registry used when no other is supplied
var Default = NewRegistry()

// Registry maps a kind tag to a striped atomic counter.
// Safe for concurrent use.
type Registry struct {
	counters *xsync.Map[string, *xsync.Counter]
}

func NewRegistry() *Registry {
	return &Registry{counters: xsync.NewMap[string, *xsync.Counter]()}
}

func (r *Registry) counter(kind string) *xsync.Counter {
	if c, ok := r.counters.Load(kind); ok {
		return c
	}
	c, _ := r.counters.LoadOrStore(kind, xsync.NewCounter())
	return c
}

// Inc records one live instance of kind
func (r *Registry) Inc(kind string) {
	r.counter(kind).Inc()
}

// Dec records one destroyed instance of kind
func (r *Registry) Dec(kind string) {
	r.counter(kind).Dec()
}

// Count returns the number of live instances of kind
func (r *Registry) Count(kind string) int64 {
	if c, ok := r.counters.Load(kind); ok {
		return c.Value()
	}
	return 0
}

// Snapshot returns a copy of every counter value
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.counters.Size())
	r.counters.Range(func(kind string, c *xsync.Counter) bool {
		out[kind] = c.Value()
		return true
	})
	return out
}

// Kinds returns the known kinds in sorted order
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, r.counters.Size())
	r.counters.Range(func(kind string, _ *xsync.Counter) bool {
		kinds = append(kinds, kind)
		return true
	})
	sort.Strings(kinds)
	return kinds
}

// Reset zeroes every counter
func (r *Registry) Reset() {
	r.counters.Range(func(_ string, c *xsync.Counter) bool {
		c.Reset()
		return true
	})
}
