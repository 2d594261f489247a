package app

import (
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/damage-scan-go/capture"
	"github.com/soocke/damage-scan-go/config"
	"github.com/soocke/damage-scan-go/domain/crop"
	"github.com/soocke/damage-scan-go/inference"
	"github.com/soocke/damage-scan-go/storage"
	"github.com/soocke/damage-scan-go/ui/images"
	"github.com/soocke/damage-scan-go/ui/model"
	"github.com/soocke/damage-scan-go/ui/presenter"
	"github.com/soocke/damage-scan-go/ui/view"
)

const previewCacheSize = 8

// AppContainer assembles models, services, presenters and views.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Store     *storage.Store
	Detectors *inference.Provider
	Crop      *crop.Controller

	Document *model.DocumentModel
	Results  *model.ResultModel
	Clock    *model.RunClock
	Previews *images.PreviewCache

	StartView   *view.StartView
	Viewer      *view.ViewerView
	ResultsView *view.ResultsView
	Dialogs     view.Dialogs

	// Presenters
	CropPresenter      *presenter.CropPresenter
	DocumentPresenter  *presenter.DocumentPresenter
	DetectionPresenter *presenter.DetectionPresenter
	StatusPresenter    *presenter.StatusPresenter
}

// BuildContainer constructs all components. No windows are created and no
// model is loaded here.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Store = storage.NewStore(cfg.WorkDir, cfg.KeepHistory, logger)
	c.Detectors = inference.NewProvider(cfg, logger)
	c.Crop = crop.NewController(nil, logger)

	c.Document = model.NewDocumentModel()
	c.Results = model.NewResultModel()
	c.Clock = model.NewRunClock()
	c.Previews = images.NewPreviewCache(previewCacheSize)

	maxW, maxH := cfg.WindowWidth, cfg.WindowHeight
	c.StartView = view.NewStartView(logger)
	c.Viewer = view.NewViewerView(cfg, cfgPath, logger)
	c.ResultsView = view.NewResultsView(maxW, maxH)

	c.CropPresenter = presenter.NewCropPresenter(c.Crop, c.Document, c.Store, c.Dialogs, c.Previews, maxW, maxH, logger)
	c.DetectionPresenter = presenter.NewDetectionPresenter(c.Detectors, c.Document, c.Store, c.ResultsView, c.Dialogs, c.Results, logger,
		c.CropPresenter, c.Viewer)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Clock, c.Results, c.Document, c.StartView)
	c.DocumentPresenter = presenter.NewDocumentPresenter(c.Store, c.Dialogs, c.Dialogs, func() (*image.RGBA, error) { return capture.Grab() }, c.openViewer, logger)
	return c
}

// openViewer shows img in the viewer, creating the window on first use.
func (c *AppContainer) openViewer(img image.Image, source string) {
	c.CropPresenter.Load(img, source)
	if c.Viewer.IsOpen() {
		return
	}
	c.Viewer.Open("Damage scan - "+filepath.Base(source), view.ViewerHandlers{
		PointerDown: c.CropPresenter.PointerDown,
		PointerMove: c.CropPresenter.PointerMove,
		PointerUp:   c.CropPresenter.PointerUp,
		Crop:        c.CropPresenter.Commit,
		Process:     c.DetectionPresenter.Process,
		Close:       c.closeViewer,
		Applied:     c.settingsApplied,
	})
	c.CropPresenter.SetView(c.Viewer)
	c.StatusPresenter.SetView(c.Viewer)
	c.Viewer.SetBusy(c.Results.Busy())
}

// closeViewer returns to the start window.
func (c *AppContainer) closeViewer() {
	c.ResultsView.Close()
	c.CropPresenter.SetView(nil)
	c.StatusPresenter.SetView(c.StartView)
	c.Viewer.Close()
}

func (c *AppContainer) settingsApplied(cfg *config.Config) {
	c.Store.SetHistory(cfg.KeepHistory)
	if c.Logger != nil {
		c.Logger.Info("settings applied", "backend", cfg.Backend, "model", cfg.ModelPath, "conf", cfg.ConfThreshold, "iou", cfg.IOUThreshold)
	}
}

// Close releases background resources.
func (c *AppContainer) Close() {
	c.DetectionPresenter.Close()
	if err := c.Detectors.Close(); err != nil && c.Logger != nil {
		c.Logger.Warn("detector close", "error", err)
	}
	c.Previews.Purge()
}
