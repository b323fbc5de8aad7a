package capture

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// solidImage creates a w x h image filled with c.
func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// writePNG writes img to a temporary PNG file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

// fakeSource returns frames from a channel.
type fakeSource struct {
	frames chan image.Image
	mu     sync.Mutex
	closed bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{frames: make(chan image.Image, 8)}
}

func (s *fakeSource) ReadFrame(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case img, ok := <-s.frames:
		if !ok {
			return nil, ErrStreamClosed
		}
		return img, nil
	}
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSource) Name() string {
	return "fake"
}

// failingSource fails every read with err.
type failingSource struct {
	err error
}

func (s failingSource) ReadFrame(context.Context) (image.Image, error) { return nil, s.err }
func (s failingSource) Close() error { return nil }
func (s failingSource) Name() string { return "failing" }

// fakeDevice returns a preset source or error, optionally waiting on gate first.
type fakeDevice struct {
	src  Source
	err  error
	gate chan struct{}
}

func (d *fakeDevice) Open(ctx context.Context) (Source, error) {
	if d.gate != nil {
		<-d.gate
	}
	return d.src, d.err
}
