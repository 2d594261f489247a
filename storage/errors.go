package storage

import "fmt"

// ImageLoadError reports a file that could not be read or decoded as an image.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }
