package presenter

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/damage-scan-go/ui/model"
)

// BusyModel reports whether detection is running.
type BusyModel interface{ Busy() bool }

// StatusView displays a one-line status.
type StatusView interface {
	SetStatus(text string)
}

// StatusPresenter formats image and run information for the status line.
type StatusPresenter struct {
	clock *model.RunClock
	busy  BusyModel
	doc   *model.DocumentModel
	view  StatusView
	last  string
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(clock *model.RunClock, busy BusyModel, doc *model.DocumentModel, view StatusView) *StatusPresenter {
	return &StatusPresenter{clock: clock, busy: busy, doc: doc, view: view}
}

// SetView swaps the status view; nil detaches it.
func (p *StatusPresenter) SetView(v StatusView) {
	if p == nil {
		return
	}
	p.view = v
	p.last = ""
}

// Tick advances the run clock and pushes changed text to the view.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.clock == nil || p.busy == nil {
		return
	}
	p.clock.OnTick(p.busy.Busy(), now)
	if p.view == nil {
		return
	}
	text := p.Text()
	if text == p.last {
		return
	}
	p.last = text
	p.view.SetStatus(text)
}

// Text renders the current status line.
func (p *StatusPresenter) Text() string {
	run, total := p.clock.Values()
	if p.clock.Running() {
		return fmt.Sprintf("Processing... %s", run.Truncate(100*time.Millisecond))
	}
	img := p.doc.Image()
	if img == nil {
		return "No image loaded"
	}
	b := img.Bounds()
	text := fmt.Sprintf("%dx%d (%s)", b.Dx(), b.Dy(), humanize.SIWithDigits(float64(b.Dx()*b.Dy()), 1, "px"))
	if n := p.clock.Runs(); n > 0 {
		text += fmt.Sprintf(" | last run %s, %d runs in %s", run.Round(10*time.Millisecond), n, total.Round(10*time.Millisecond))
	}
	return text
}
