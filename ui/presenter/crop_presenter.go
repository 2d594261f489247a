package presenter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/damage-scan-go/domain/crop"
	"github.com/soocke/damage-scan-go/domain/geometry"
	"github.com/soocke/damage-scan-go/ui/images"
	"github.com/soocke/damage-scan-go/ui/model"
)

// CropController narrows crop.Controller to what the presenter drives.
type CropController interface {
	SetListener(crop.Listener)
	Image() image.Image
	PointerDown(geometry.Point)
	PointerMove(geometry.Point)
	PointerUp(geometry.Point)
	CommitCrop() (image.Image, error)
	ReplaceImage(image.Image)
}

var _ CropController = (*crop.Controller)(nil)

// WorkingStore persists the working image after a crop.
type WorkingStore interface {
	SaveWorking(img image.Image) error
}

// ViewerView is the image viewer surface.
type ViewerView interface {
	SetPreview(img image.Image)
	SetCropEnabled(enabled bool)
	SetSelectionInfo(text string)
}

// Notifier shows user-facing error messages.
type Notifier interface {
	ShowError(title, message string)
}

// CropPresenter maps widget pointer events onto the crop controller and
// renders the scaled image with the live selection back to the viewer.
type CropPresenter struct {
	ctrl   CropController
	doc    *model.DocumentModel
	store  WorkingStore
	view   ViewerView
	notify Notifier
	cache  *images.PreviewCache
	logger *slog.Logger

	maxW, maxH int
	viewport   geometry.Viewport
	sel        crop.Selection
	busy       bool
}

// NewCropPresenter wires the presenter as the controller's listener. maxW and
// maxH bound the displayed preview.
func NewCropPresenter(ctrl CropController, doc *model.DocumentModel, store WorkingStore, notify Notifier, cache *images.PreviewCache, maxW, maxH int, logger *slog.Logger) *CropPresenter {
	p := &CropPresenter{ctrl: ctrl, doc: doc, store: store, notify: notify, cache: cache, maxW: maxW, maxH: maxH, logger: logger}
	if ctrl != nil {
		ctrl.SetListener(p.onSelection)
	}
	return p
}

// SetView attaches the viewer (nil detaches it when the window closes).
func (p *CropPresenter) SetView(v ViewerView) {
	if p == nil {
		return
	}
	p.view = v
	if v != nil {
		p.render()
		p.updateCrop()
	}
}

// Viewport returns the current display mapping.
func (p *CropPresenter) Viewport() geometry.Viewport {
	if p == nil {
		return geometry.Viewport{}
	}
	return p.viewport
}

// Load installs a freshly loaded image and resets any selection.
func (p *CropPresenter) Load(img image.Image, source string) {
	if p == nil || p.ctrl == nil || img == nil {
		return
	}
	p.doc.Replace(img, source)
	p.ctrl.ReplaceImage(img)
	p.render()
}

// PointerDown starts a drag at widget coordinates (x, y).
func (p *CropPresenter) PointerDown(x, y int) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerDown(p.toImage(x, y))
	p.render()
}

// PointerMove updates the live selection while dragging.
func (p *CropPresenter) PointerMove(x, y int) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerMove(p.toImage(x, y))
	p.render()
}

// PointerUp finalizes the selection.
func (p *CropPresenter) PointerUp(x, y int) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerUp(p.toImage(x, y))
	p.render()
}

// Commit crops the current image to the selection and persists the result.
func (p *CropPresenter) Commit() {
	if p == nil || p.ctrl == nil || p.busy {
		return
	}
	out, err := p.ctrl.CommitCrop()
	if err != nil {
		p.showError("Crop", err)
		return
	}
	p.doc.Replace(out, "crop")
	if p.store != nil {
		if err := p.store.SaveWorking(out); err != nil {
			if p.logger != nil {
				p.logger.Error("save cropped image", "error", err)
			}
			p.showError("Crop", fmt.Errorf("cropped image could not be saved: %w", err))
		}
	}
	p.render()
}

// SetBusy disables cropping while detection runs.
func (p *CropPresenter) SetBusy(b bool) {
	if p == nil {
		return
	}
	p.busy = b
	p.updateCrop()
}

func (p *CropPresenter) onSelection(s crop.Selection) {
	p.sel = s
	p.updateCrop()
	if p.view == nil {
		return
	}
	if s.Rect.Usable() {
		px := s.Rect.Pixels()
		p.view.SetSelectionInfo(fmt.Sprintf("Selection: %dx%d px at (%d,%d)", px.Dx(), px.Dy(), px.Min.X, px.Min.Y))
	} else {
		p.view.SetSelectionInfo("")
	}
}

func (p *CropPresenter) updateCrop() {
	if p.view != nil {
		p.view.SetCropEnabled(p.sel.CommitEnabled && !p.busy)
	}
}

func (p *CropPresenter) toImage(x, y int) geometry.Point {
	return p.viewport.ToImage(geometry.Pt(float64(x), float64(y)))
}

func (p *CropPresenter) render() {
	img := p.ctrl.Image()
	if img == nil {
		return
	}
	b := img.Bounds()
	p.viewport = geometry.FitViewport(b.Dx(), b.Dy(), p.maxW, p.maxH)
	if p.view == nil {
		return
	}
	base := p.cache.Get(p.doc.Revision(), img, p.maxW, p.maxH)
	out := base
	if p.sel.Rect.Usable() {
		out = images.DrawSelection(base, p.viewport.ToDisplay(p.sel.Rect).Pixels())
	}
	p.view.SetPreview(out)
}

func (p *CropPresenter) showError(title string, err error) {
	if p.notify != nil {
		p.notify.ShowError(title, err.Error())
	}
}
