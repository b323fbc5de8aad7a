package client

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
)

// discardLogger keeps test output quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordedRequest is one request seen by the mock endpoint.
type recordedRequest struct {
	Header http.Header
	Body   attendance.Request
}

// mockEndpoint records requests and replies with a fixed status and body.
type mockEndpoint struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newMockEndpoint(t *testing.T, status int, body string) *mockEndpoint {
	t.Helper()
	m := &mockEndpoint{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req attendance.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("mock endpoint received invalid JSON: %v", err)
		}
		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{Header: r.Header.Clone(), Body: req})
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockEndpoint) Requests() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

// newTestClient creates a client pointed at the mock endpoint.
func newTestClient(t *testing.T, m *mockEndpoint) *Client {
	t.Helper()
	c, err := New(m.URL+"/attendance", 0)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// recordingNotifier collects notification messages.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// imageDevice serves a single in-memory image. The stream stays open until
// dead is closed, or forever when dead is nil.
type imageDevice struct {
	img  image.Image
	err  error
	dead chan struct{}
}

func (d imageDevice) Open(ctx context.Context) (capture.Source, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &imageSource{img: d.img, dead: d.dead}, nil
}

type imageSource struct {
	img    image.Image
	dead   chan struct{}
	served bool
}

func (s *imageSource) ReadFrame(ctx context.Context) (image.Image, error) {
	if !s.served {
		s.served = true
		return s.img, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.dead:
		return nil, capture.ErrStreamClosed
	}
}

func (s *imageSource) Close() error { return nil }
func (s *imageSource) Name() string { return "test image" }

func grayImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	return img
}
