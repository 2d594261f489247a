package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleToFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	out := ScaleToFit(src, 100, 100)
	require.Equal(t, image.Pt(100, 50), out.Bounds().Size())

	small := image.NewRGBA(image.Rect(10, 10, 30, 20))
	out = ScaleToFit(small, 100, 100)
	require.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
	require.Nil(t, ScaleToFit(nil, 1, 1))
}

func TestEncodePNG(t *testing.T) {
	data := EncodePNG(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, img.Bounds().Dx())
	require.Nil(t, EncodePNG(nil))
}

func TestDrawSelection_CopiesBase(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	out := DrawSelection(base, image.Rect(10, 10, 40, 40))
	require.NotSame(t, base, out)
	require.Equal(t, SelectionColor, out.NRGBAAt(10, 20))
	require.Equal(t, SelectionColor, out.NRGBAAt(39, 20))
	require.Zero(t, out.NRGBAAt(25, 25).A)
	require.Zero(t, base.NRGBAAt(10, 20).A)

	require.Same(t, base, DrawSelection(base, image.Rectangle{}))
}

func TestPreviewCache(t *testing.T) {
	c := NewPreviewCache(2)
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))

	a := c.Get(1, src, 100, 100)
	require.Same(t, a, c.Get(1, src, 100, 100))
	require.Equal(t, 1, c.Len())

	b := c.Get(2, src, 100, 100)
	require.NotSame(t, a, b)
	c.Get(1, src, 50, 50)
	require.Equal(t, 2, c.Len())

	c.Purge()
	require.Zero(t, c.Len())

	var nilCache *PreviewCache
	require.NotNil(t, nilCache.Get(1, src, 10, 10))
}
