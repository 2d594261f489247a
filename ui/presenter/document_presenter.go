package presenter

import (
	"image"
	"log/slog"
)

// ImageImporter decodes a user file into the workspace.
type ImageImporter interface {
	Import(path string) (image.Image, error)
	SaveWorking(img image.Image) error
}

// FilePicker asks the user for an image path; ok is false on cancel.
type FilePicker interface {
	PickImage() (path string, ok bool)
}

// DocumentPresenter handles the start window actions that produce a new
// working image.
type DocumentPresenter struct {
	store  ImageImporter
	picker FilePicker
	notify Notifier
	logger *slog.Logger

	// Grab captures the screen.
	Grab func() (*image.RGBA, error)
	// Open shows img in the viewer.
	Open func(img image.Image, source string)
}

func NewDocumentPresenter(store ImageImporter, picker FilePicker, notify Notifier, grab func() (*image.RGBA, error), open func(image.Image, string), logger *slog.Logger) *DocumentPresenter {
	return &DocumentPresenter{store: store, picker: picker, notify: notify, Grab: grab, Open: open, logger: logger}
}

// OpenFile asks for a file and loads it. Cancelling the dialog is not an error.
func (p *DocumentPresenter) OpenFile() {
	if p == nil || p.picker == nil {
		return
	}
	path, ok := p.picker.PickImage()
	if !ok || path == "" {
		return
	}
	p.OpenPath(path)
}

// OpenPath imports path as the working image.
func (p *DocumentPresenter) OpenPath(path string) {
	if p == nil || p.store == nil {
		return
	}
	img, err := p.store.Import(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("image load failed", "path", path, "error", err)
		}
		p.fail("Load image", err)
		return
	}
	p.open(img, path)
}

// CaptureScreen grabs the primary monitor and uses it as the working image.
func (p *DocumentPresenter) CaptureScreen() {
	if p == nil || p.Grab == nil {
		return
	}
	img, err := p.Grab()
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("screen capture failed", "error", err)
		}
		p.fail("Capture screen", err)
		return
	}
	if p.store != nil {
		if err := p.store.SaveWorking(img); err != nil {
			p.fail("Capture screen", err)
			return
		}
	}
	p.open(img, "screen")
}

func (p *DocumentPresenter) open(img image.Image, source string) {
	if p.Open != nil {
		p.Open(img, source)
	}
}

func (p *DocumentPresenter) fail(title string, err error) {
	if p.notify != nil {
		p.notify.ShowError(title, err.Error())
	}
}
