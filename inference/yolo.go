package inference

import (
	"errors"
	"fmt"
	"image"

	"github.com/nfnt/resize"

	"github.com/soocke/damage-scan-go/config"
	"github.com/soocke/damage-scan-go/domain/detection"
	"github.com/soocke/damage-scan-go/domain/geometry"
)

// Options configure a YOLO-family detector. Both backends read the same
// single-output export layout: [1, 4+classes, anchors] with boxes as
// (cx, cy, w, h) in input-tensor pixels followed by per-class scores.
type Options struct {
	ModelPath      string
	RuntimeLibrary string
	Labels         []string
	InputSize      int
	ConfThreshold  float64
	IOUThreshold   float64
}

// OptionsFromConfig maps the app config onto detector options.
func OptionsFromConfig(cfg *config.Config, labels []string) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		ModelPath:      cfg.ModelPath,
		RuntimeLibrary: cfg.RuntimeLibrary,
		Labels:         labels,
		InputSize:      cfg.InputSize,
		ConfThreshold:  cfg.ConfThreshold,
		IOUThreshold:   cfg.IOUThreshold,
	}
}

// AnchorCount is the number of candidate boxes a stride 8/16/32 head emits
// for a square input of the given size.
func AnchorCount(inputSize int) int {
	n := 0
	for _, stride := range []int{8, 16, 32} {
		g := inputSize / stride
		n += g * g
	}
	return n
}

// Preprocess resizes img to size x size and returns it as a normalized CHW
// float tensor (RGB, 0..1).
func Preprocess(img image.Image, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)
	b := resized.Bounds()
	plane := size * size
	input := make([]float32, 3*plane)
	idx := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, bl, _ := resized.At(b.Min.X+x, b.Min.Y+y).RGBA()
			input[idx] = float32(r>>8) / 255.0
			input[idx+plane] = float32(g>>8) / 255.0
			input[idx+2*plane] = float32(bl>>8) / 255.0
			idx++
		}
	}
	return input
}

// decodeParams carries what Decode needs besides the raw tensor.
type decodeParams struct {
	labels     []string
	numClasses int
	inputSize  int
	srcW, srcH int
	minConf    float64
}

var errOutputShape = errors.New("unexpected model output size")

// decode turns the raw output tensor into detections in source image
// coordinates, dropping candidates below minConf. NMS is applied by the caller.
func decode(output []float32, p decodeParams) ([]detection.Detection, error) {
	rows := 4 + p.numClasses
	if p.numClasses <= 0 || len(output) == 0 || len(output)%rows != 0 {
		return nil, fmt.Errorf("%w: %d values for %d classes", errOutputShape, len(output), p.numClasses)
	}
	n := len(output) / rows
	sx := float64(p.srcW) / float64(p.inputSize)
	sy := float64(p.srcH) / float64(p.inputSize)
	bounds := geometry.Rect{Right: float64(p.srcW), Bottom: float64(p.srcH)}

	var dets []detection.Detection
	for i := 0; i < n; i++ {
		classID, best := -1, float32(0)
		for c := 0; c < p.numClasses; c++ {
			if s := output[(4+c)*n+i]; s > best {
				best, classID = s, c
			}
		}
		if classID < 0 || float64(best) < p.minConf {
			continue
		}
		cx, cy := float64(output[i]), float64(output[n+i])
		w, h := float64(output[2*n+i]), float64(output[3*n+i])
		box := geometry.Clip(geometry.Rect{
			Left:   (cx - w/2) * sx,
			Top:    (cy - h/2) * sy,
			Right:  (cx + w/2) * sx,
			Bottom: (cy + h/2) * sy,
		}, bounds)
		if !box.Usable() {
			continue
		}
		dets = append(dets, detection.Detection{
			Label:      labelFor(p.labels, classID),
			Confidence: float64(best),
			Box:        box,
		})
	}
	return dets, nil
}

func labelFor(labels []string, id int) string {
	if id >= 0 && id < len(labels) {
		return labels[id]
	}
	return fmt.Sprintf("class %d", id)
}
