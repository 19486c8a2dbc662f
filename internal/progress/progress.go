// Package progress counts completed translation tasks for one language.
package progress

import "sync/atomic"

// Tracker is a completion counter shared by concurrently running tasks.
// The zero value is not usable; create one with New.
type Tracker struct {
	total int64
	done  atomic.Int64
}

// New returns a Tracker expecting total completions.
func New(total int) *Tracker {
	return &Tracker{total: int64(total)}
}

// Increment records one completed task and returns the post-increment count
// together with the completion percentage (0–100). Every caller observes a
// distinct count.
func (t *Tracker) Increment() (count int, percent int) {
	n := t.done.Add(1)
	return int(n), t.percent(n)
}

// Total returns the expected number of tasks.
func (t *Tracker) Total() int {
	return int(t.total)
}

func (t *Tracker) percent(n int64) int {
	if t.total <= 0 {
		return 100
	}
	if n >= t.total {
		return 100
	}
	return int(n * 100 / t.total)
}
