package capture

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"
)

func TestAcquireStream_Success(t *testing.T) {
	src := newFakeSource()
	src.frames <- solidImage(4, 4, color.White)

	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	f, err := p.WaitFrame(ctx)
	if err != nil {
		t.Fatalf("expected a frame, got %v", err)
	}
	if f.Image.Bounds().Dx() != 4 {
		t.Errorf("expected 4px wide frame, got %d", f.Image.Bounds().Dx())
	}
	if f.CapturedAt.IsZero() {
		t.Error("expected capture timestamp")
	}
	if p.Name() != "fake" {
		t.Errorf("expected name 'fake', got '%s'", p.Name())
	}
}

func TestAcquireStream_PermissionDenied(t *testing.T) {
	_, err := AcquireStream(context.Background(), &fakeDevice{err: ErrPermissionDenied})

	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestAcquireStream_NoCamera(t *testing.T) {
	_, err := AcquireStream(context.Background(), WebcamDevice{ID: "0"})

	// Without the gocv tag the webcam reports no camera. With it, a CI box has none either.
	if !errors.Is(err, ErrNoCamera) {
		t.Errorf("expected ErrNoCamera, got %v", err)
	}
}

func TestAcquireStream_ContextCancelled(t *testing.T) {
	src := newFakeSource()
	gate := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AcquireStream(ctx, &fakeDevice{src: src, gate: gate})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The late source must be released.
	close(gate)
	deadline := time.Now().Add(time.Second)
	for !src.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("expected abandoned source to be closed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPreview_KeepsLatestFrame(t *testing.T) {
	src := newFakeSource()
	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	if _, ok := p.Latest(); ok {
		t.Error("expected no frame before the source delivers one")
	}

	src.frames <- solidImage(2, 2, color.Black)
	src.frames <- solidImage(3, 3, color.White)

	deadline := time.Now().Add(time.Second)
	for {
		if f, ok := p.Latest(); ok && f.Image.Bounds().Dx() == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected latest frame to be the 3px one")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPreview_WaitFrameAfterStreamEnds(t *testing.T) {
	src := newFakeSource()
	close(src.frames)

	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = p.WaitFrame(ctx)
	if !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
	if !errors.Is(err, ErrStreamClosed) {
		t.Errorf("expected wrapped ErrStreamClosed, got %v", err)
	}
}

func TestPreview_WaitFrameAfterSourceDies(t *testing.T) {
	src := newFakeSource()
	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	src.frames <- solidImage(2, 2, color.Black)
	if _, err := p.WaitFrame(ctx); err != nil {
		t.Fatalf("unexpected error before the source dies: %v", err)
	}

	close(src.frames)
	<-p.done

	f, err := p.WaitFrame(ctx)
	if !errors.Is(err, ErrStreamClosed) {
		t.Errorf("expected ErrStreamClosed, got %v", err)
	}
	if f.Image != nil {
		t.Error("expected no frame from a dead stream")
	}
}

func TestPreview_WaitFrameWrapsOtherStreamErrors(t *testing.T) {
	readErr := errors.New("usb disconnect")
	p := startPreview(failingSource{err: readErr})
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := p.WaitFrame(ctx)
	if !errors.Is(err, ErrStreamClosed) || !errors.Is(err, readErr) {
		t.Errorf("expected ErrStreamClosed wrapping the read error, got %v", err)
	}
}

func TestPreview_WaitFrameHonoursContext(t *testing.T) {
	src := newFakeSource()
	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.WaitFrame(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestPreview_CloseReleasesSource(t *testing.T) {
	src := newFakeSource()
	p, err := AcquireStream(context.Background(), &fakeDevice{src: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if !src.isClosed() {
		t.Error("expected source to be closed")
	}
	if p.Err() != nil {
		t.Errorf("cancellation should not be recorded as a stream error, got %v", p.Err())
	}
}
