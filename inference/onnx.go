package inference

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/soocke/damage-scan-go/domain/detection"
)

const (
	onnxInputName  = "images"
	onnxOutputName = "output0"
)

// ONNXDetector runs a YOLO export through ONNX Runtime. The session is
// created on the first Detect call; a failed load is not cached so the user
// can fix the model path and retry.
type ONNXDetector struct {
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	ownsEnv bool
}

// NewONNXDetector returns a detector; no files are touched until Detect.
func NewONNXDetector(opts Options, logger *slog.Logger) *ONNXDetector {
	return &ONNXDetector{opts: opts, logger: logger}
}

var _ detection.Detector = (*ONNXDetector)(nil)

// Detect runs inference on img and returns the annotated copy and detections.
func (d *ONNXDetector) Detect(ctx context.Context, img image.Image) (*detection.Result, error) {
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
	b := img.Bounds()
	copy(d.input.GetData(), Preprocess(img, d.opts.InputSize))
	if err := d.session.Run(); err != nil {
		return nil, detection.InferenceError(fmt.Errorf("run session: %w", err))
	}
	dets, err := decode(d.output.GetData(), decodeParams{
		labels:     d.opts.Labels,
		numClasses: len(d.opts.Labels),
		inputSize:  d.opts.InputSize,
		srcW:       b.Dx(),
		srcH:       b.Dy(),
		minConf:    d.opts.ConfThreshold,
	})
	if err != nil {
		return nil, detection.InferenceError(err)
	}
	dets = detection.NonMaxSuppression(dets, d.opts.IOUThreshold)
	if d.logger != nil {
		d.logger.Info("inference done", "backend", "onnx", "detections", len(dets), "elapsed", time.Since(start).String())
	}
	return &detection.Result{Annotated: Annotate(img, dets), Detections: dets}, nil
}

func (d *ONNXDetector) load() error {
	if d.session != nil {
		return nil
	}
	if len(d.opts.Labels) == 0 {
		return detection.ModelUnavailable(errors.New("no class labels configured"))
	}
	if _, err := os.Stat(d.opts.ModelPath); err != nil {
		return detection.ModelUnavailable(err)
	}
	if !ort.IsInitialized() {
		lib := d.opts.RuntimeLibrary
		if lib == "" {
			lib = defaultRuntimeLibrary()
		}
		if lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return detection.ModelUnavailable(fmt.Errorf("initialize onnxruntime (%s): %w", lib, err))
		}
		d.ownsEnv = true
	}

	size := int64(d.opts.InputSize)
	input, err := ort.NewTensor(ort.NewShape(1, 3, size, size), make([]float32, 3*size*size))
	if err != nil {
		return detection.ModelUnavailable(fmt.Errorf("input tensor: %w", err))
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+len(d.opts.Labels)), int64(AnchorCount(d.opts.InputSize))))
	if err != nil {
		input.Destroy()
		return detection.ModelUnavailable(fmt.Errorf("output tensor: %w", err))
	}
	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return detection.ModelUnavailable(err)
	}
	defer options.Destroy()
	threads := runtime.NumCPU() / 2
	if threads < 1 {
		threads = 1
	}
	_ = options.SetIntraOpNumThreads(threads)

	session, err := ort.NewAdvancedSession(d.opts.ModelPath,
		[]string{onnxInputName}, []string{onnxOutputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, options)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return detection.ModelUnavailable(fmt.Errorf("load %s: %w", d.opts.ModelPath, err))
	}
	d.session, d.input, d.output = session, input, output
	if d.logger != nil {
		d.logger.Info("model loaded", "path", d.opts.ModelPath, "classes", len(d.opts.Labels), "input", d.opts.InputSize)
	}
	return nil
}

// Close releases the session and, if this detector initialized it, the runtime.
func (d *ONNXDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	if d.session != nil {
		errs = append(errs, d.session.Destroy())
		d.session = nil
	}
	if d.input != nil {
		errs = append(errs, d.input.Destroy())
		d.input = nil
	}
	if d.output != nil {
		errs = append(errs, d.output.Destroy())
		d.output = nil
	}
	if d.ownsEnv {
		errs = append(errs, ort.DestroyEnvironment())
		d.ownsEnv = false
	}
	return errors.Join(errs...)
}

// defaultRuntimeLibrary mirrors the onnxruntime release layout under ./third_party.
func defaultRuntimeLibrary() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.dylib"
		}
		return "./third_party/onnxruntime.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
	return ""
}
