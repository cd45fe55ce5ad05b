// Package camera abstracts the frame source. A Source is owned by exactly
// one consumer at a time; device acquisition is exclusive and release on
// every exit path is the consumer's responsibility (usually a defer).
package camera

import (
	"errors"
	"image"
)

// ErrNoFrame signals that the device produced no frame: read failure,
// disconnect or end of stream. It terminates the current stream gracefully
// rather than surfacing as a hard error.
var ErrNoFrame = errors.New("no frame available")

// Source yields frames in capture order until the device is exhausted.
type Source interface {
	// Next blocks until a frame is available and returns it, or returns
	// ErrNoFrame when the device cannot deliver one.
	Next() (image.Image, error)
	Close() error
}
