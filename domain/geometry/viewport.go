package geometry

// Viewport maps between a scaled on-screen preview and the image it shows.
// Scale is display pixels per image pixel; Offset is where the image origin
// sits inside the widget. The zero value is treated as an identity mapping.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitViewport returns the viewport produced by shrinking a srcW x srcH image to
// fit within maxW x maxH while keeping aspect ratio. Images that already fit
// are shown 1:1.
func FitViewport(srcW, srcH, maxW, maxH int) Viewport {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return Viewport{Scale: 1}
	}
	if srcW <= maxW && srcH <= maxH {
		return Viewport{Scale: 1}
	}
	sx := float64(maxW) / float64(srcW)
	sy := float64(maxH) / float64(srcH)
	if sy < sx {
		sx = sy
	}
	return Viewport{Scale: sx}
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ToImage converts a widget-relative point into image coordinates.
func (v Viewport) ToImage(p Point) Point {
	s := v.scale()
	return Point{X: (p.X - v.OffsetX) / s, Y: (p.Y - v.OffsetY) / s}
}

// ToDisplay converts an image-space rectangle into widget coordinates.
func (v Viewport) ToDisplay(r Rect) Rect {
	s := v.scale()
	return Rect{
		Left:   r.Left*s + v.OffsetX,
		Top:    r.Top*s + v.OffsetY,
		Right:  r.Right*s + v.OffsetX,
		Bottom: r.Bottom*s + v.OffsetY,
	}
}
