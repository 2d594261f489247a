package crop

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

type recorder struct{ got []Selection }

func (r *recorder) listen(s Selection) { r.got = append(r.got, s) }

func (r *recorder) last() Selection {
	if len(r.got) == 0 {
		return Selection{}
	}
	return r.got[len(r.got)-1]
}

func TestController_ReverseDragCropsFiveByFive(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	rec := &recorder{}
	c.SetListener(rec.listen)

	c.PointerDown(geometry.Pt(10, 10))
	require.Equal(t, StateDragging, c.State())
	c.PointerMove(geometry.Pt(7, 7))
	require.True(t, rec.last().CommitEnabled)
	c.PointerUp(geometry.Pt(5, 5))

	require.Equal(t, StateSelected, c.State())
	sel := rec.last()
	require.True(t, sel.Final)
	require.True(t, sel.CommitEnabled)
	require.Equal(t, geometry.Rect{Left: 5, Top: 5, Right: 10, Bottom: 10}, sel.Rect)

	out, err := c.CommitCrop()
	require.NoError(t, err)
	require.Equal(t, 5, out.Bounds().Dx())
	require.Equal(t, 5, out.Bounds().Dy())

	// pixel (0,0) of the crop is pixel (5,5) of the source
	r, g, _, _ := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
	require.Equal(t, uint32(5), r>>8)
	require.Equal(t, uint32(5), g>>8)

	require.Equal(t, StateIdle, c.State())
	require.Same(t, out, c.Image())
	require.False(t, rec.last().CommitEnabled)
}

func TestController_OutsideDragNeverEnablesCommit(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	rec := &recorder{}
	c.SetListener(rec.listen)

	c.PointerDown(geometry.Pt(-50, -50))
	c.PointerMove(geometry.Pt(-20, -20))
	require.False(t, rec.last().CommitEnabled)
	c.PointerUp(geometry.Pt(-10, -10))
	require.False(t, rec.last().CommitEnabled)
	require.False(t, rec.last().Rect.Usable())

	_, err := c.CommitCrop()
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestController_DegenerateDrag(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	rec := &recorder{}
	c.SetListener(rec.listen)

	c.PointerDown(geometry.Pt(40, 40))
	c.PointerUp(geometry.Pt(40, 40))
	require.False(t, rec.last().CommitEnabled)

	img, err := c.CommitCrop()
	require.Nil(t, img)
	var nse *NoSelectionError
	require.True(t, errors.As(err, &nse))
	require.Equal(t, StateSelected, nse.State)
}

func TestController_CommitWithoutDrag(t *testing.T) {
	c := NewController(testImage(10, 10), nil)
	_, err := c.CommitCrop()
	require.ErrorIs(t, err, ErrNoSelection)

	// still dragging: no committed rectangle yet
	c.PointerDown(geometry.Pt(1, 1))
	c.PointerMove(geometry.Pt(8, 8))
	_, err = c.CommitCrop()
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestController_ClipsPartiallyOutsideDrag(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	c.PointerDown(geometry.Pt(80, 90))
	c.PointerUp(geometry.Pt(150, 130))
	sel := c.Selection()
	require.Equal(t, geometry.Rect{Left: 80, Top: 90, Right: 100, Bottom: 100}, sel.Rect)

	out, err := c.CommitCrop()
	require.NoError(t, err)
	require.Equal(t, image.Pt(20, 10), out.Bounds().Size())
}

func TestController_ReplaceImageResets(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	c.PointerDown(geometry.Pt(10, 10))
	c.PointerUp(geometry.Pt(60, 60))
	out, err := c.CommitCrop()
	require.NoError(t, err)

	next := testImage(30, 30)
	c.ReplaceImage(next)
	require.Equal(t, StateIdle, c.State())
	require.Equal(t, Selection{}, c.Selection())

	// a release without a fresh press must not resurrect the old rectangle
	c.PointerUp(geometry.Pt(20, 20))
	require.Equal(t, StateIdle, c.State())
	_, err = c.CommitCrop()
	require.ErrorIs(t, err, ErrNoSelection)
	require.NotSame(t, out, c.Image())
}

func TestController_RepeatedCropsCompound(t *testing.T) {
	c := NewController(testImage(100, 100), nil)
	c.PointerDown(geometry.Pt(10, 10))
	c.PointerUp(geometry.Pt(60, 60))
	_, err := c.CommitCrop()
	require.NoError(t, err)

	// second selection is relative to the 50x50 crop, not the original
	c.PointerDown(geometry.Pt(0, 0))
	c.PointerUp(geometry.Pt(80, 80))
	out, err := c.CommitCrop()
	require.NoError(t, err)
	require.Equal(t, image.Pt(50, 50), out.Bounds().Size())
}

func TestController_SubImageOrigin(t *testing.T) {
	base := testImage(100, 100)
	sub := base.SubImage(image.Rect(20, 30, 70, 80))
	c := NewController(sub, nil)
	c.PointerDown(geometry.Pt(0, 0))
	c.PointerUp(geometry.Pt(10, 10))
	out, err := c.CommitCrop()
	require.NoError(t, err)
	r, g, _, _ := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
	require.Equal(t, uint32(20), r>>8)
	require.Equal(t, uint32(30), g>>8)
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller
	c.PointerDown(geometry.Pt(1, 1))
	c.PointerMove(geometry.Pt(2, 2))
	c.PointerUp(geometry.Pt(3, 3))
	c.ReplaceImage(nil)
	require.Equal(t, StateIdle, c.State())
	_, err := c.CommitCrop()
	require.ErrorIs(t, err, ErrNoSelection)
}
