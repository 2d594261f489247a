package view

import (
	"image"
	"log/slog"

	"github.com/soocke/damage-scan-go/config"
	"github.com/soocke/damage-scan-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ViewerHandlers receive viewer events. Pointer coordinates are relative to
// the image label.
type ViewerHandlers struct {
	PointerDown func(x, y int)
	PointerMove func(x, y int)
	PointerUp   func(x, y int)
	Crop        func()
	Process     func()
	Close       func()
	Applied     func(cfg *config.Config)
}

// ViewerView is the image window with the rubber band selection, crop and
// process buttons and the detection settings panel.
type ViewerView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	win        *ToplevelWidget
	image      *photoLabel
	cropBtn    *TButtonWidget
	processBtn *TButtonWidget
	info       *LabelWidget
	status     StatusBar
	panel      ConfigPanel
}

func NewViewerView(cfg *config.Config, cfgPath string, logger *slog.Logger) *ViewerView {
	return &ViewerView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Open creates the window. It is a no-op when the window already exists.
func (v *ViewerView) Open(title string, h ViewerHandlers) {
	if v == nil || v.win != nil {
		return
	}
	win := App.Toplevel()
	win.WmTitle(title)
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", func() {
		if h.Close != nil {
			h.Close()
		}
	})
	GridColumnConfigure(win.Window, 0, Weight(1))
	GridRowConfigure(win.Window, 0, Weight(1))

	lbl := win.Label(Borderwidth(0), Padx(0), Pady(0), Anchor("nw"), Cursor("crosshair"))
	Grid(lbl, Row(0), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v.image = newPhotoLabel(lbl)
	pointer := func(fn func(x, y int)) any {
		return Command(func(e *Event) {
			if fn != nil && e != nil {
				fn(e.X, e.Y)
			}
		})
	}
	Bind(lbl, "<ButtonPress-1>", pointer(h.PointerDown))
	Bind(lbl, "<B1-Motion>", pointer(h.PointerMove))
	Bind(lbl, "<ButtonRelease-1>", pointer(h.PointerUp))

	side := win.Frame()
	Grid(side, Row(0), Column(1), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	v.panel = NewConfigPanel(v.cfg, v.cfgPath, v.logger, h.Applied)
	v.panel.Build(side, 0)

	btnFrame := win.Frame()
	Grid(btnFrame, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.cropBtn = btnFrame.TButton(Txt("Crop"), Command(h.Crop), State("disabled"))
	Grid(v.cropBtn, Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	v.processBtn = btnFrame.TButton(Txt("Process image"), Style(theme.StylePrimaryButton), Command(h.Process))
	Grid(v.processBtn, Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	closeBtn := btnFrame.TButton(Txt("Close"), Command(h.Close))
	Grid(closeBtn, Row(0), Column(2), Sticky("e"), Padx("0.2m"))

	v.info = win.Label(Anchor("w"), Txt(""))
	Grid(v.info, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	v.status = NewStatusBar(win.Window, 3, 0, 2)
}

// IsOpen reports whether the window exists.
func (v *ViewerView) IsOpen() bool { return v != nil && v.win != nil }

// Close destroys the window and frees its photo.
func (v *ViewerView) Close() {
	if v == nil || v.win == nil {
		return
	}
	v.image.release()
	Destroy(v.win)
	v.win = nil
	v.image, v.cropBtn, v.processBtn, v.info, v.status, v.panel = nil, nil, nil, nil, nil, nil
}

// SetPreview shows the display-ready image.
func (v *ViewerView) SetPreview(img image.Image) {
	if v == nil || v.image == nil {
		return
	}
	v.image.set(img)
}

// SetCropEnabled toggles the crop button.
func (v *ViewerView) SetCropEnabled(enabled bool) {
	if v == nil || v.cropBtn == nil {
		return
	}
	v.cropBtn.Configure(State(stateName(enabled)))
}

// SetSelectionInfo shows the selection size.
func (v *ViewerView) SetSelectionInfo(text string) {
	if v == nil || v.info == nil {
		return
	}
	v.info.Configure(Txt(text))
}

// SetBusy disables processing and settings while detection runs.
func (v *ViewerView) SetBusy(busy bool) {
	if v == nil || v.processBtn == nil {
		return
	}
	v.processBtn.Configure(State(stateName(!busy)))
	if v.panel != nil {
		v.panel.SetEditable(!busy)
	}
}

// SetStatus proxies to the viewer status bar.
func (v *ViewerView) SetStatus(text string) {
	if v != nil && v.status != nil {
		v.status.SetStatus(text)
	}
}

func stateName(enabled bool) string {
	if enabled {
		return "normal"
	}
	return "disabled"
}
