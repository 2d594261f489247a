package inference

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/damage-scan-go/domain/detection"
)

var boxPalette = []color.NRGBA{
	{R: 255, G: 56, B: 56, A: 255},
	{R: 255, G: 157, B: 151, A: 255},
	{R: 255, G: 112, B: 31, A: 255},
	{R: 255, G: 178, B: 29, A: 255},
	{R: 207, G: 210, B: 49, A: 255},
	{R: 72, G: 249, B: 10, A: 255},
	{R: 26, G: 147, B: 52, A: 255},
	{R: 0, G: 212, B: 187, A: 255},
	{R: 52, G: 69, B: 147, A: 255},
	{R: 132, G: 56, B: 255, A: 255},
}

// LabelColor returns a stable color for a label.
func LabelColor(label string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return boxPalette[h.Sum32()%uint32(len(boxPalette))]
}

// StrokeWidth scales outline thickness with the image: (w+h)/300, at least 1px.
func StrokeWidth(b image.Rectangle) int {
	w := (b.Dx() + b.Dy()) / 300
	if w < 1 {
		w = 1
	}
	return w
}

// Annotate returns a copy of img with a box and a "label 0.87" caption drawn
// for every detection. The source image is left untouched.
func Annotate(img image.Image, dets []detection.Detection) *image.NRGBA {
	dst := imaging.Clone(img)
	if len(dets) == 0 {
		return dst
	}
	stroke := StrokeWidth(dst.Bounds())
	face := basicfont.Face7x13
	for _, d := range dets {
		c := LabelColor(d.Label)
		r := d.Box.Pixels()
		DrawOutline(dst, r, c, stroke)

		caption := fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
		drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}
		tw := drawer.MeasureString(caption).Ceil()
		th := face.Metrics().Height.Ceil()
		top := r.Min.Y - th - 2
		if top < 0 {
			top = r.Min.Y
		}
		bg := image.Rect(r.Min.X, top, r.Min.X+tw+4, top+th+2).Intersect(dst.Bounds())
		draw.Draw(dst, bg, image.NewUniform(c), image.Point{}, draw.Src)
		drawer.Dot = fixed.P(r.Min.X+2, top+face.Metrics().Ascent.Ceil()+1)
		drawer.DrawString(caption)
	}
	return dst
}

// DrawOutline strokes r onto dst with the given width, clipped to dst.
func DrawOutline(dst draw.Image, r image.Rectangle, c color.Color, width int) {
	if width < 1 {
		width = 1
	}
	src := image.NewUniform(c)
	bounds := dst.Bounds()
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(bounds), src, image.Point{}, draw.Over)
	}
}
