package presenter

import "time"

// Loop drives periodic presenter work from the Tk event loop.
//
// It polls the detection worker, refreshes the status line and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Detect   *DetectionPresenter
	Status   *StatusPresenter
	Schedule func()
}

func NewLoop(detect *DetectionPresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Detect: detect, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Detect != nil {
		l.Detect.Poll()
	}
	if l.Status != nil {
		l.Status.Tick(time.Now())
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
