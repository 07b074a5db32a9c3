package sprite

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveImage is returned when an operation needs an image and none
	// has been loaded yet.
	ErrNoActiveImage = errors.New("no active image")
	// ErrOutOfBounds is returned for pixel coordinates outside the image.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrNoPath is returned by Save when neither an explicit path nor a
	// remembered one is available.
	ErrNoPath = errors.New("no file path")
)

// DecodeError reports a file that could not be read or understood.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a file that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
