package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit shrinks src so it fits within maxW x maxH preserving aspect
// ratio. Images that already fit are copied 1:1. The result is always a
// fresh *image.NRGBA anchored at (0,0).
func ScaleToFit(src image.Image, maxW, maxH int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return imaging.Clone(src)
	}
	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}
