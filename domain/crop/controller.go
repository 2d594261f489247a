package crop

import (
	"image"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

// Controller tracks a mouse-driven rectangular selection over the current
// image and crops it on demand. It owns the single current-image slot; every
// transformation replaces the slot instead of mutating pixels.
//
// Not safe for concurrent use: all calls are expected from the UI thread.
type Controller struct {
	logger   *slog.Logger
	listener Listener

	img       image.Image
	state     State
	anchor    geometry.Point
	selection geometry.Rect
}

// NewController returns an idle controller holding img (may be nil).
func NewController(img image.Image, logger *slog.Logger) *Controller {
	return &Controller{img: img, logger: logger}
}

// SetListener installs the selection callback. Passing nil disables publishing.
func (c *Controller) SetListener(l Listener) {
	if c == nil {
		return
	}
	c.listener = l
}

// Image returns the current image.
func (c *Controller) Image() image.Image {
	if c == nil {
		return nil
	}
	return c.img
}

// State reports the selection state.
func (c *Controller) State() State {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// Selection returns the current preview or committed rectangle.
func (c *Controller) Selection() Selection {
	if c == nil || c.state == StateIdle {
		return Selection{}
	}
	return Selection{Rect: c.selection, CommitEnabled: c.selection.Usable(), Final: c.state == StateSelected}
}

// PointerDown fixes the drag anchor and drops any previous preview.
func (c *Controller) PointerDown(p geometry.Point) {
	if c == nil {
		return
	}
	c.anchor = p
	c.selection = geometry.Rect{}
	c.state = StateDragging
	c.publish(Selection{})
}

// PointerMove updates the live preview. Ignored unless a drag is in progress.
func (c *Controller) PointerMove(p geometry.Point) {
	if c == nil || c.state != StateDragging {
		return
	}
	c.selection = c.clip(p)
	c.publish(Selection{Rect: c.selection, CommitEnabled: c.selection.Usable()})
}

// PointerUp finalizes the selection. Ignored unless a drag is in progress.
func (c *Controller) PointerUp(p geometry.Point) {
	if c == nil || c.state != StateDragging {
		return
	}
	c.selection = c.clip(p)
	c.state = StateSelected
	c.publish(Selection{Rect: c.selection, CommitEnabled: c.selection.Usable(), Final: true})
	if c.logger != nil {
		c.logger.Debug("crop selection", "rect", c.selection.Pixels().String(), "usable", c.selection.Usable())
	}
}

// CommitCrop cuts the selected rectangle out of the current image, installs the
// result as the new current image and returns it. The controller is idle
// afterwards, so a new drag is required before the next crop.
func (c *Controller) CommitCrop() (image.Image, error) {
	if c == nil {
		return nil, &NoSelectionError{}
	}
	if c.state != StateSelected || !c.selection.Usable() || c.img == nil {
		return nil, &NoSelectionError{State: c.state, Rect: c.selection}
	}
	src := c.img
	box := c.selection.Pixels().Add(src.Bounds().Min)
	if box.Dx() <= 0 || box.Dy() <= 0 {
		// sub-pixel selections truncate to nothing
		return nil, &NoSelectionError{State: c.state, Rect: c.selection}
	}
	out := imaging.Crop(src, box)
	if c.logger != nil {
		c.logger.Info("image cropped", "from", src.Bounds().Size().String(), "to", out.Bounds().Size().String())
	}
	c.ReplaceImage(out)
	return out, nil
}

// ReplaceImage swaps the current image and forgets any selection.
func (c *Controller) ReplaceImage(img image.Image) {
	if c == nil {
		return
	}
	c.img = img
	c.state = StateIdle
	c.anchor = geometry.Point{}
	c.selection = geometry.Rect{}
	c.publish(Selection{})
}

func (c *Controller) clip(p geometry.Point) geometry.Rect {
	return geometry.Clip(geometry.Normalize(c.anchor, p), geometry.Bounds(c.img))
}

func (c *Controller) publish(s Selection) {
	if c.listener != nil {
		c.listener(s)
	}
}
