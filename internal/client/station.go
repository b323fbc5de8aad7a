package client

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	applog "github.com/kozaktomas/face-attendance/internal/log"
)

// Outcome messages shown to the operator.
const (
	MessageMarked = "Attendance marked successfully!"
	MessageFailed = "Failed to mark attendance!"
)

// Rasterizer draws a frame onto a fixed-size surface and returns the encoded payload.
type Rasterizer interface {
	Rasterize(img image.Image) (string, error)
}

// Submitter performs a single attendance request.
type Submitter interface {
	Submit(ctx context.Context, req attendance.Request) (*attendance.Response, error)
}

// StationOptions are the collaborators of a Station.
type StationOptions struct {
	Device    capture.Device
	Surface   Rasterizer
	Phone     PhoneInput
	Submitter Submitter
	Notifier  Notifier
	Logger    *slog.Logger
}

// Station bridges a camera feed to attendance submissions. It does not guard
// against overlapping submissions.
type Station struct {
	device    capture.Device
	surface   Rasterizer
	phone     PhoneInput
	submitter Submitter
	notifier  Notifier
	logger    *slog.Logger

	mu      sync.Mutex
	preview *capture.Preview
}

// NewStation creates a station from its collaborators.
func NewStation(opts StationOptions) *Station {
	logger := opts.Logger
	if logger == nil {
		logger = applog.L()
	}
	return &Station{
		device:    opts.Device,
		surface:   opts.Surface,
		phone:     opts.Phone,
		submitter: opts.Submitter,
		notifier:  opts.Notifier,
		logger:    logger,
	}
}

// AcquireStream opens the camera and starts the preview. Failures are
// logged and returned; the preview stays empty and nothing is retried.
func (s *Station) AcquireStream(ctx context.Context) error {
	preview, err := capture.AcquireStream(ctx, s.device)
	if err != nil {
		s.logger.Error("Error accessing webcam", "error", err)
		return err
	}

	s.mu.Lock()
	old := s.preview
	s.preview = preview
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}

	s.logger.Info("Camera stream started", "source", preview.Name())
	return nil
}

// CaptureFrame rasterizes the current frame and submits it with the phone
// number from the input. An empty phone aborts before any network call.
func (s *Station) CaptureFrame(ctx context.Context) error {
	phone := attendance.NormalizePhone(s.phone.Phone())
	if phone == "" {
		err := &attendance.ValidationError{Field: "phone", Reason: "phone number is required"}
		s.logger.Error("Phone number is required")
		return err
	}

	s.mu.Lock()
	preview := s.preview
	s.mu.Unlock()
	if preview == nil {
		s.logger.Error("No camera stream to capture from")
		return fmt.Errorf("capturing frame: %w", capture.ErrNoFrame)
	}

	frame, err := preview.WaitFrame(ctx)
	if err != nil {
		s.logger.Error("Error capturing frame", "error", err)
		return fmt.Errorf("capturing frame: %w", err)
	}

	imageData, err := s.surface.Rasterize(frame.Image)
	if err != nil {
		s.logger.Error("Error encoding frame", "error", err)
		return fmt.Errorf("encoding frame: %w", err)
	}

	return s.Submit(ctx, imageData, phone)
}

// Submit sends one request carrying imageData and phone and shows the outcome.
func (s *Station) Submit(ctx context.Context, imageData, phone string) error {
	req := attendance.Request{Image: imageData, Phone: phone}
	if err := req.Validate(); err != nil {
		s.logger.Error("Phone number is required")
		return err
	}

	s.logger.Debug("Data being sent", "phone", req.Phone, "image_length", len(req.Image))

	resp, err := s.submitter.Submit(ctx, req)
	if err != nil {
		s.logger.Error("Error sending data", "error", err)
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			s.notify(ctx, MessageFailed)
		}
		return err
	}

	s.logger.Info("Data received", "success", resp.Success, "message", resp.Message)
	if !resp.Success {
		s.notify(ctx, MessageFailed)
		return fmt.Errorf("%w: %s", ErrAttendanceRejected, resp.Message)
	}

	s.notify(ctx, MessageMarked)
	return nil
}

func (s *Station) notify(ctx context.Context, message string) {
	if s.notifier == nil || ctx.Err() != nil {
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Warn("Failed to show notification", "error", err)
	}
}

// Close stops the preview, if one is running.
func (s *Station) Close() error {
	s.mu.Lock()
	preview := s.preview
	s.preview = nil
	s.mu.Unlock()

	if preview == nil {
		return nil
	}
	return preview.Close()
}
