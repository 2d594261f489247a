package view

import (
	"log/slog"

	"github.com/soocke/damage-scan-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// StartHandlers are the start window actions.
type StartHandlers struct {
	LoadImage     func()
	CaptureScreen func()
	Exit          func()
}

// StartView is the main window: title, image sources and exit.
type StartView struct {
	logger *slog.Logger
	Status StatusBar
}

func NewStartView(logger *slog.Logger) *StartView {
	return &StartView{logger: logger}
}

// Build lays out the start window on the Tk root.
func (sv *StartView) Build(h StartHandlers) {
	if sv == nil {
		return
	}
	GridColumnConfigure(App, 0, Weight(1))
	title := Label(Txt("Vehicle damage detection"), Font("helvetica", 16, "bold"), Anchor("center"))
	Grid(title, Row(0), Column(0), Sticky("we"), Padx("2m"), Pady("3m"))
	hint := Label(Txt("Load a photo, crop it if needed and run the damage detector."), Anchor("center"))
	Grid(hint, Row(1), Column(0), Sticky("we"), Padx("2m"), Pady("1m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(2), Column(0), Padx("2m"), Pady("2m"))
	load := TButton(Txt("Load image"), Style(theme.StylePrimaryButton), Command(h.LoadImage))
	Grid(load, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.5m"), Pady("0.5m"))
	grab := TButton(Txt("Capture screen"), Command(h.CaptureScreen))
	Grid(grab, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.5m"), Pady("0.5m"))
	exit := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.Exit))
	Grid(exit, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.5m"), Pady("0.5m"))

	sv.Status = NewStatusBar(App, 3, 0, 1)
	sv.Status.SetStatus("No image loaded")
}

// SetStatus proxies to the status bar.
func (sv *StartView) SetStatus(text string) {
	if sv != nil && sv.Status != nil {
		sv.Status.SetStatus(text)
	}
}
