package detection

import (
	"context"
	"errors"
	"image"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

// Detection is one model output in the coordinate space of the image it was
// computed on.
type Detection struct {
	Label      string        `json:"label"`
	Confidence float64       `json:"confidence"`
	Box        geometry.Rect `json:"box"`
}

// Result bundles the detections with the source image rendered with boxes.
type Result struct {
	Annotated  image.Image
	Detections []Detection
}

// Detector is the opaque detection capability. Implementations load their
// model lazily and must be safe to call from a worker goroutine.
type Detector interface {
	Detect(ctx context.Context, img image.Image) (*Result, error)
	Close() error
}

var (
	// ErrModelUnavailable means the model artifact is missing or the runtime
	// failed to initialize.
	ErrModelUnavailable = errors.New("detection model unavailable")
	// ErrInference means the model could not process the given image.
	ErrInference = errors.New("inference failed")
)

// wrapped keeps the sentinel for errors.Is while preserving the cause chain.
type wrapped struct {
	kind  error
	cause error
}

func (e *wrapped) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *wrapped) Is(target error) bool { return target == e.kind }
func (e *wrapped) Unwrap() error        { return e.cause }

// ModelUnavailable wraps cause as an ErrModelUnavailable.
func ModelUnavailable(cause error) error { return &wrapped{kind: ErrModelUnavailable, cause: cause} }

// InferenceError wraps cause as an ErrInference.
func InferenceError(cause error) error { return &wrapped{kind: ErrInference, cause: cause} }
