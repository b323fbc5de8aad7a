//go:build !gocv

package capture

import (
	"context"
	"fmt"
)

// WebcamDevice opens a camera through OpenCV. This build has no OpenCV
// support; rebuild with -tags gocv.
type WebcamDevice struct {
	ID     string
	Width  int
	Height int
}

// Open always fails with ErrNoCamera.
func (d WebcamDevice) Open(ctx context.Context) (Source, error) {
	return nil, fmt.Errorf("%w: built without gocv support (device %s)", ErrNoCamera, d.ID)
}
