//go:build gocv

package capture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// WebcamDevice opens a camera through OpenCV.
type WebcamDevice struct {
	ID     string // device index ("0") or stream URL
	Width  int    // requested frame width, driver default if zero
	Height int    // requested frame height, driver default if zero
}

// Open opens the camera and requests the configured frame size.
func (d WebcamDevice) Open(ctx context.Context) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc, err := gocv.OpenVideoCapture(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCamera, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: device %s did not open", ErrNoCamera, d.ID)
	}

	if d.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(d.Width))
	}
	if d.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(d.Height))
	}

	return &webcamSource{vc: vc, id: d.ID, mat: gocv.NewMat()}, nil
}

type webcamSource struct {
	mu  sync.Mutex
	vc  *gocv.VideoCapture
	mat gocv.Mat
	id  string
}

func (s *webcamSource) ReadFrame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok := s.vc.Read(&s.mat); !ok {
			return nil, ErrStreamClosed
		}
		// Cameras often deliver a few empty frames while warming up.
		if s.mat.Empty() {
			continue
		}
		img, err := s.mat.ToImage()
		if err != nil {
			return nil, fmt.Errorf("converting frame: %w", err)
		}
		return img, nil
	}
}

func (s *webcamSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mat.Close()
	return s.vc.Close()
}

func (s *webcamSource) Name() string {
	return "webcam " + s.id
}
