//go:build gocv
// +build gocv

package inference

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/soocke/damage-scan-go/domain/detection"
)

// GoCVDetector runs the same YOLO export through the OpenCV DNN module.
type GoCVDetector struct {
	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	net    gocv.Net
	loaded bool
}

// NewGoCVDetector returns a detector; the network is read on first Detect.
func NewGoCVDetector(opts Options, logger *slog.Logger) *GoCVDetector {
	return &GoCVDetector{opts: opts, logger: logger}
}

var _ detection.Detector = (*GoCVDetector)(nil)

// Detect runs inference on img and returns the annotated copy and detections.
func (d *GoCVDetector) Detect(ctx context.Context, img image.Image) (*detection.Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, detection.InferenceError(errors.New("empty image"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return nil, err
	}

	start := time.Now()
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, detection.InferenceError(fmt.Errorf("image to mat: %w", err))
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, detection.InferenceError(errors.New("empty mat"))
	}

	size := d.opts.InputSize
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()
	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, detection.InferenceError(fmt.Errorf("read output: %w", err))
	}
	// copy out of the Mat before it is closed
	raw := append([]float32(nil), data...)

	b := img.Bounds()
	dets, err := decode(raw, decodeParams{
		labels:     d.opts.Labels,
		numClasses: len(d.opts.Labels),
		inputSize:  size,
		srcW:       b.Dx(),
		srcH:       b.Dy(),
		minConf:    d.opts.ConfThreshold,
	})
	if err != nil {
		return nil, detection.InferenceError(err)
	}
	dets = detection.NonMaxSuppression(dets, d.opts.IOUThreshold)
	if d.logger != nil {
		d.logger.Info("inference done", "backend", "gocv", "detections", len(dets), "elapsed", time.Since(start).String())
	}
	return &detection.Result{Annotated: Annotate(img, dets), Detections: dets}, nil
}

func (d *GoCVDetector) load() error {
	if d.loaded {
		return nil
	}
	if len(d.opts.Labels) == 0 {
		return detection.ModelUnavailable(errors.New("no class labels configured"))
	}
	if _, err := os.Stat(d.opts.ModelPath); err != nil {
		return detection.ModelUnavailable(err)
	}
	net := gocv.ReadNetFromONNX(d.opts.ModelPath)
	if net.Empty() {
		net.Close()
		return detection.ModelUnavailable(fmt.Errorf("opencv could not read %s", d.opts.ModelPath))
	}
	d.net, d.loaded = net, true
	if d.logger != nil {
		d.logger.Info("model loaded", "backend", "gocv", "path", d.opts.ModelPath, "classes", len(d.opts.Labels))
	}
	return nil
}

// Close releases the network.
func (d *GoCVDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loaded {
		return nil
	}
	d.loaded = false
	return d.net.Close()
}
