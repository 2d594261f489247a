package view

import (
	"image"
	"strings"

	"github.com/soocke/damage-scan-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultsView shows the annotated image and the detection summary. Showing
// a new result replaces the window content.
type ResultsView struct {
	maxW, maxH int

	win     *ToplevelWidget
	image   *photoLabel
	summary *TextWidget
}

func NewResultsView(maxW, maxH int) *ResultsView {
	return &ResultsView{maxW: maxW, maxH: maxH}
}

// ShowResults opens (or refreshes) the results window.
func (v *ResultsView) ShowResults(annotated image.Image, summary string) {
	if v == nil {
		return
	}
	if v.win == nil {
		v.build()
	}
	if annotated != nil {
		v.image.set(images.ScaleToFit(annotated, v.maxW, v.maxH))
	}
	lines := strings.Count(summary, "\n") + 1
	v.summary.Configure(State("normal"), Height(lines))
	v.summary.Delete("1.0", END)
	v.summary.Insert("1.0", summary)
	v.summary.Configure(State("disabled"))
}

func (v *ResultsView) build() {
	win := App.Toplevel()
	win.WmTitle("Detection results")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.Close)
	GridColumnConfigure(win.Window, 0, Weight(1))

	lbl := win.Label(Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(0), Column(0), Padx("0.4m"), Pady("0.4m"))
	v.image = newPhotoLabel(lbl)

	v.summary = win.Text(Height(4), Width(40), Borderwidth(0))
	Grid(v.summary, Row(1), Column(0), Sticky("we"), Padx("0.8m"), Pady("0.4m"))

	back := win.TButton(Txt("Back"), Command(v.Close))
	Grid(back, Row(2), Column(0), Sticky("e"), Padx("0.4m"), Pady("0.4m"))
}

// IsOpen reports whether the window exists.
func (v *ResultsView) IsOpen() bool { return v != nil && v.win != nil }

// Close destroys the window; the viewer stays open.
func (v *ResultsView) Close() {
	if v == nil || v.win == nil {
		return
	}
	v.image.release()
	Destroy(v.win)
	v.win, v.image, v.summary = nil, nil, nil
}
