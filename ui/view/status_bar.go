package view

import (
	"github.com/soocke/damage-scan-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows a one-line status message.
type StatusBar interface {
	SetStatus(text string)
}

type statusBar struct {
	lbl *TLabelWidget
}

// NewStatusBar creates the status label inside parent at (row, col), spanning span columns.
func NewStatusBar(parent *Window, row, col, span int) StatusBar {
	s := &statusBar{lbl: parent.TLabel(Anchor("w"), Style(theme.StyleStatusLabel), Txt(""))}
	Grid(s.lbl, Row(row), Column(col), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	return s
}

// SetStatus updates the status text.
func (s *statusBar) SetStatus(text string) {
	if s == nil || s.lbl == nil {
		return
	}
	s.lbl.Configure(Txt(text))
}
