package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ErrEmptyCapture is returned when the screen grab produced no pixels.
var ErrEmptyCapture = errors.New("screen capture is empty")

// grabber is swapped in tests.
var grabber = screenshot.CaptureScreen

// Grab returns a capture of the primary monitor.
func Grab() (*image.RGBA, error) {
	img, err := grabber()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyCapture
	}
	return img, nil
}

// GrabRect captures only the given screen area.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	if area.Empty() {
		return nil, ErrEmptyCapture
	}
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", area, err)
	}
	return img, nil
}
