package model

import (
	"sync/atomic"
	"time"

	"github.com/soocke/damage-scan-go/domain/detection"
)

// ResultModel holds the busy flag and the last detection outcome.
// Busy is atomic because the worker goroutine and UI callbacks both read it;
// the remaining fields are written on the UI thread only.
type ResultModel struct {
	busy atomic.Bool

	last      *detection.Result
	summary   string
	historyID string
	elapsed   time.Duration
}

func NewResultModel() *ResultModel { return &ResultModel{} }

func (m *ResultModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// SetBusy stores the flag and reports whether it changed.
func (m *ResultModel) SetBusy(b bool) bool {
	if m == nil {
		return false
	}
	return m.busy.Swap(b) != b
}

// Set records a finished run.
func (m *ResultModel) Set(res *detection.Result, summary, historyID string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.last, m.summary, m.historyID, m.elapsed = res, summary, historyID, elapsed
}

func (m *ResultModel) Last() *detection.Result {
	if m == nil {
		return nil
	}
	return m.last
}

func (m *ResultModel) Summary() string {
	if m == nil {
		return ""
	}
	return m.summary
}

func (m *ResultModel) HistoryID() string {
	if m == nil {
		return ""
	}
	return m.historyID
}

func (m *ResultModel) Elapsed() time.Duration {
	if m == nil {
		return 0
	}
	return m.elapsed
}
