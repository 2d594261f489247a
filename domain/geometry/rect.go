package geometry

import (
	"image"
	"math"
)

// Point is a position in image-pixel coordinates. Fractional values are
// allowed because pointer positions are mapped back from a scaled preview.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis-aligned rectangle. Rectangles built with Normalize satisfy
// Left <= Right and Top <= Bottom; Clip may return an inverted rectangle when
// its inputs do not overlap.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Normalize returns the rectangle spanned by two arbitrary corner points.
func Normalize(p1, p2 Point) Rect {
	return Rect{
		Left:   math.Min(p1.X, p2.X),
		Top:    math.Min(p1.Y, p2.Y),
		Right:  math.Max(p1.X, p2.X),
		Bottom: math.Max(p1.Y, p2.Y),
	}
}

// Clip returns the intersection of r and bounds. When the two do not overlap
// the result has zero or negative area; check Usable before cropping with it.
func Clip(r, bounds Rect) Rect {
	return Rect{
		Left:   math.Max(r.Left, bounds.Left),
		Top:    math.Max(r.Top, bounds.Top),
		Right:  math.Min(r.Right, bounds.Right),
		Bottom: math.Min(r.Bottom, bounds.Bottom),
	}
}

// Bounds returns [0,w]x[0,h] for img. A nil image yields the zero Rect.
func Bounds(img image.Image) Rect {
	if img == nil {
		return Rect{}
	}
	b := img.Bounds()
	return Rect{Right: float64(b.Dx()), Bottom: float64(b.Dy())}
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{Left: float64(r.Min.X), Top: float64(r.Min.Y), Right: float64(r.Max.X), Bottom: float64(r.Max.Y)}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Usable reports whether r has strictly positive width and height.
func (r Rect) Usable() bool { return r.Width() > 0 && r.Height() > 0 }

// Area is zero for rectangles that are not usable.
func (r Rect) Area() float64 {
	if !r.Usable() {
		return 0
	}
	return r.Width() * r.Height()
}

// Pixels truncates every bound toward zero, which is how a selection is turned
// into the box handed to the cropper.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

// IoU returns intersection-over-union of two rectangles, 0 when either is empty.
func IoU(a, b Rect) float64 {
	inter := Clip(a, b).Area()
	if inter == 0 {
		return 0
	}
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
