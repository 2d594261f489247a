package view

import (
	"image"

	"github.com/soocke/damage-scan-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// photoLabel is a label showing one Tk photo. Each update replaces the photo
// and deletes the previous one so off-screen pixel data does not pile up.
type photoLabel struct {
	label *LabelWidget
	photo *Img
}

func newPhotoLabel(label *LabelWidget) *photoLabel {
	return &photoLabel{label: label}
}

// set shows img as-is; callers scale it beforehand.
func (p *photoLabel) set(img image.Image) {
	if p == nil || p.label == nil || img == nil {
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	p.label.Configure(Image(photo))
	if p.photo != nil {
		p.photo.Delete()
	}
	p.photo = photo
}

func (p *photoLabel) release() {
	if p == nil || p.photo == nil {
		return
	}
	p.photo.Delete()
	p.photo = nil
}
