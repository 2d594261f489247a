package model

import (
	"time"
)

// RunClock tracks the duration of the current detection run and the
// accumulated processing time. Presenters poll Values() and update views.
// The zero value is ready to use.
type RunClock struct {
	active      bool
	runStart    time.Time
	lastRun     time.Duration
	accumulated time.Duration
	runs        int
}

// NewRunClock returns a pointer to a ready-to-use RunClock.
func NewRunClock() *RunClock { return &RunClock{} }

// OnTick updates the clock from the busy state at now.
func (m *RunClock) OnTick(busy bool, now time.Time) {
	if m == nil {
		return
	}
	if busy {
		if !m.active { // idle -> busy
			m.active = true
			m.runStart = now
			m.lastRun = 0
		}
		m.lastRun = now.Sub(m.runStart)
	} else if m.active { // busy -> idle
		m.lastRun = now.Sub(m.runStart)
		m.accumulated += m.lastRun
		m.active = false
		m.runs++
	}
}

// Values returns the current (or last) run duration and the total, which
// includes the ongoing run.
func (m *RunClock) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	run = m.lastRun
	total = m.accumulated
	if m.active {
		total += run
	}
	return
}

// Running reports whether a run is in progress.
func (m *RunClock) Running() bool { return m != nil && m.active }

// Runs counts finished runs.
func (m *RunClock) Runs() int {
	if m == nil {
		return 0
	}
	return m.runs
}
