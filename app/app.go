package app

import (
	"context"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/damage-scan-go/config"
	"github.com/soocke/damage-scan-go/debug"
	"github.com/soocke/damage-scan-go/ui/presenter"
	"github.com/soocke/damage-scan-go/ui/theme"
	"github.com/soocke/damage-scan-go/ui/view"
)

const (
	tick          = 100 * time.Millisecond
	statsInterval = 5 * time.Second
	startW        = 420
	startH        = 260
)

type app struct {
	title   string
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	c       *AppContainer
	loop    *presenter.Loop
	afterID string
	stop    context.CancelFunc
}

func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &app{title: title, cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Start builds the UI and blocks in the Tk event loop until exit.
func (a *app) Start() {
	enableDPIAwareness()
	theme.Apply(a.cfg.DarkMode)
	App.WmTitle(a.title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	sw, sh := screenSize()
	WmGeometry(App, centeredGeometry(startW, startH, sw, sh))

	a.c = BuildContainer(a.cfg, a.cfgPath, a.logger)
	a.c.StartView.Build(view.StartHandlers{
		LoadImage:     a.c.DocumentPresenter.OpenFile,
		CaptureScreen: a.c.DocumentPresenter.CaptureScreen,
		Exit:          a.exitHandler,
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	if a.cfg.Debug {
		debug.StartStatsLogger(ctx, statsInterval, a.logger)
	}

	a.loop = presenter.NewLoop(a.c.DetectionPresenter, a.c.StatusPresenter, a.scheduleUpdate)
	a.scheduleUpdate()
	a.logger.Info("started", "config", a.cfgPath, "work_dir", a.cfg.WorkDir, "backend", a.cfg.Backend)
	App.Wait()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.stop != nil {
		a.stop()
	}
	if a.c != nil {
		a.c.closeViewer()
		a.c.Close()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps the tick on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.loop.Tick() })
}
