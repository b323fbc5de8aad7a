package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
)

// DefaultStillInterval paces still sources at roughly 30 frames per second.
const DefaultStillInterval = 33 * time.Millisecond

// StillDevice serves a decoded image file as an endless stream.
type StillDevice struct {
	Path     string
	Interval time.Duration // delay between frames, DefaultStillInterval if zero
}

// Open decodes the file. Unreadable files map to ErrPermissionDenied.
func (d StillDevice) Open(ctx context.Context) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("opening %s: %w", d.Path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", d.Path, err)
	}

	interval := d.Interval
	if interval <= 0 {
		interval = DefaultStillInterval
	}
	return &stillSource{
		img:      img,
		name:     filepath.Base(d.Path),
		interval: interval,
		closed:   make(chan struct{}),
	}, nil
}

type stillSource struct {
	img      image.Image
	name     string
	interval time.Duration
	served   bool
	closed   chan struct{}
}

func (s *stillSource) ReadFrame(ctx context.Context) (image.Image, error) {
	if !s.served {
		s.served = true
		return s.img, nil
	}

	t := time.NewTimer(s.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closed:
		return nil, ErrStreamClosed
	case <-t.C:
		return s.img, nil
	}
}

func (s *stillSource) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}

func (s *stillSource) Name() string {
	return s.name
}
