package crop

import (
	"errors"
	"fmt"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

// State enumerates the selection lifecycle.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Selection is what the controller publishes after every pointer event.
// Rect is in image-pixel coordinates and already clipped to the image.
type Selection struct {
	Rect          geometry.Rect
	CommitEnabled bool
	Final         bool // set once the pointer was released
}

// Listener receives selection updates. It runs synchronously on the caller's
// goroutine (the UI thread).
type Listener func(Selection)

// ErrNoSelection is matched by every *NoSelectionError.
var ErrNoSelection = errors.New("no crop selection")

// NoSelectionError reports a commit without a usable selected rectangle.
type NoSelectionError struct {
	State State
	Rect  geometry.Rect
}

func (e *NoSelectionError) Error() string {
	if e.State != StateSelected {
		return fmt.Sprintf("no crop selection (state %s)", e.State)
	}
	return fmt.Sprintf("crop selection has no area (%.0fx%.0f)", e.Rect.Width(), e.Rect.Height())
}

func (e *NoSelectionError) Is(target error) bool { return target == ErrNoSelection }
