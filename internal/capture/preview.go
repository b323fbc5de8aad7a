package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Preview continuously reads a Source and keeps the latest frame.
type Preview struct {
	src    Source
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	latest *Frame
	err    error
	ready  chan struct{} // closed on the first frame
	once   sync.Once
}

type acquireResult struct {
	src Source
	err error
}

// AcquireStream opens the device on its own goroutine and waits for the
// outcome. On success the source is bound to a running Preview.
// Cancelling ctx abandons the attempt; a source that opens late is closed.
func AcquireStream(ctx context.Context, dev Device) (*Preview, error) {
	results := make(chan acquireResult, 1)
	go func() {
		src, err := dev.Open(ctx)
		results <- acquireResult{src: src, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if res := <-results; res.src != nil {
				res.src.Close()
			}
		}()
		return nil, fmt.Errorf("acquiring stream: %w", ctx.Err())
	case res := <-results:
		if res.err != nil {
			return nil, fmt.Errorf("acquiring stream: %w", res.err)
		}
		return startPreview(res.src), nil
	}
}

func startPreview(src Source) *Preview {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Preview{
		src:    src,
		cancel: cancel,
		done:   make(chan struct{}),
		ready:  make(chan struct{}),
	}
	go p.run(ctx)
	return p
}

func (p *Preview) run(ctx context.Context) {
	defer close(p.done)
	for {
		img, err := p.src.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() == nil {
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
			}
			// Wake waiters so they observe the end of the stream.
			p.once.Do(func() { close(p.ready) })
			return
		}

		p.mu.Lock()
		p.latest = &Frame{Image: img, CapturedAt: time.Now()}
		p.mu.Unlock()
		p.once.Do(func() { close(p.ready) })
	}
}

// Name returns the name of the bound source.
func (p *Preview) Name() string {
	return p.src.Name()
}

// Latest returns the most recent frame, if any.
func (p *Preview) Latest() (Frame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.latest == nil {
		return Frame{}, false
	}
	return *p.latest, true
}

// Err returns the error that stopped the stream, if any.
func (p *Preview) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// WaitFrame returns the latest frame, waiting for the first one if needed.
// Once the stream has ended no frame is returned, even if one was seen
// before: the cached frame no longer shows what is in front of the camera.
func (p *Preview) WaitFrame(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case <-p.ready:
	}

	if err := p.Err(); err != nil {
		if !errors.Is(err, ErrStreamClosed) {
			err = errors.Join(ErrStreamClosed, err)
		}
		return Frame{}, errors.Join(ErrNoFrame, err)
	}
	if f, ok := p.Latest(); ok {
		return f, nil
	}
	return Frame{}, ErrNoFrame
}

// Close stops reading and releases the source. Sources are closed only after
// the reader goroutine has returned, since camera handles are not safe for
// concurrent use.
func (p *Preview) Close() error {
	p.cancel()
	<-p.done
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", p.src.Name(), err)
	}
	return nil
}
