// Package capture turns a live video source into single still frames.
//
// A Device opens a Source (a camera or an image file). AcquireStream binds
// the source to a Preview that keeps the most recent frame, and a Surface
// rasterizes that frame at a fixed size and encodes it as a JPEG data URI.
package capture

import (
	"context"
	"errors"
	"image"
	"time"
)

var (
	// ErrPermissionDenied is returned when access to the camera is refused.
	ErrPermissionDenied = errors.New("camera access denied")
	// ErrNoCamera is returned when no camera is available.
	ErrNoCamera = errors.New("no camera available")
	// ErrNoFrame is returned when the stream ended before delivering a frame.
	ErrNoFrame = errors.New("no frame available")
	// ErrStreamClosed is returned by sources that can no longer deliver frames.
	ErrStreamClosed = errors.New("stream closed")
)

// Frame is a single captured image.
type Frame struct {
	Image      image.Image
	CapturedAt time.Time
}

// Source delivers frames from a live stream.
type Source interface {
	// ReadFrame blocks until the next frame is available.
	ReadFrame(ctx context.Context) (image.Image, error)
	Close() error
	Name() string
}

// Device opens a Source. Open may block while the platform asks for access.
type Device interface {
	Open(ctx context.Context) (Source, error)
}
