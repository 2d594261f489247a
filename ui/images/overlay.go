package images

import (
	"image"
	"image/color"
	"image/draw"
)

// SelectionColor is the rubber band color.
var SelectionColor = color.NRGBA{R: 255, G: 40, B: 40, A: 255}

// DrawSelection returns a copy of base with r outlined. An empty r returns
// base unchanged.
func DrawSelection(base *image.NRGBA, r image.Rectangle) *image.NRGBA {
	if base == nil || r.Empty() {
		return base
	}
	out := image.NewNRGBA(base.Bounds())
	copy(out.Pix, base.Pix)
	width := (base.Bounds().Dx() + base.Bounds().Dy()) / 300
	if width < 2 {
		width = 2
	}
	outline(out, r, SelectionColor, width)
	return out
}

func outline(dst draw.Image, r image.Rectangle, c color.Color, width int) {
	src := image.NewUniform(c)
	bounds := dst.Bounds()
	for _, e := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, e.Intersect(bounds), src, image.Point{}, draw.Src)
	}
}
