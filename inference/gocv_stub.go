//go:build !gocv
// +build !gocv

package inference

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/damage-scan-go/domain/detection"
)

// GoCVDetector is unavailable in builds without the gocv tag.
type GoCVDetector struct {
	opts Options
}

// NewGoCVDetector returns a stub detector (built without OpenCV).
func NewGoCVDetector(opts Options, logger *slog.Logger) *GoCVDetector {
	_ = logger
	return &GoCVDetector{opts: opts}
}

// Detect always fails with ErrModelUnavailable without the gocv build tag.
func (d *GoCVDetector) Detect(ctx context.Context, img image.Image) (*detection.Result, error) {
	_ = ctx
	_ = img
	return nil, detection.ModelUnavailable(errors.New("gocv build tag is not enabled"))
}

// Close is a no-op.
func (d *GoCVDetector) Close() error { return nil }
