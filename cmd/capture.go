package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/client"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture frames from a webcam and submit attendance",
	Long: `Open a webcam and submit a still frame each time Enter is pressed.

Without --phone the phone number is asked for before every capture.
Type q and press Enter to quit.`,
	Args: cobra.NoArgs,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	addStationFlags(captureCmd)

	captureCmd.Flags().String("device", "", "Camera device index or stream URL (default from CAMERA_DEVICE or 0)")
}

// addStationFlags registers the flags shared by capture and submit.
func addStationFlags(cmd *cobra.Command) {
	cmd.Flags().String("phone", "", "Phone number to submit with every frame")
	cmd.Flags().String("endpoint", "", "Attendance endpoint URL (default from ATTENDANCE_URL)")
	cmd.Flags().String("preset", "", "Capture surface preset (default, low, 720p, square)")
	cmd.Flags().Duration("timeout", 0, "Request timeout, 0 waits indefinitely (default from ATTENDANCE_TIMEOUT)")
}

// loadStationConfig applies the shared flags on top of the environment config.
func loadStationConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()

	if preset := mustGetString(cmd, "preset"); preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if endpoint := mustGetString(cmd, "endpoint"); endpoint != "" {
		cfg.Endpoint.URL = endpoint
	}
	if timeout := mustGetDuration(cmd, "timeout"); timeout > 0 {
		cfg.Endpoint.Timeout = timeout
	}
	if errs := cfg.Camera.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid camera config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// newSubmitter builds the HTTP client wrapped in a terminal spinner.
func newSubmitter(cfg *config.Config) (client.Submitter, error) {
	c, err := client.New(cfg.Endpoint.URL, cfg.Endpoint.Timeout)
	if err != nil {
		return nil, err
	}
	return spinnerSubmitter{next: c}, nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadStationConfig(cmd)
	if err != nil {
		return err
	}
	if device := mustGetString(cmd, "device"); device != "" {
		cfg.Camera.Device = device
	}

	surface, err := capture.NewSurface(cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.Quality)
	if err != nil {
		return err
	}
	submitter, err := newSubmitter(cfg)
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	var phone client.PhoneInput = client.PromptPhone{In: in, Out: os.Stdout}
	if p := mustGetString(cmd, "phone"); p != "" {
		phone = client.StaticPhone(p)
	}

	station := client.NewStation(client.StationOptions{
		Device: capture.WebcamDevice{
			ID:     cfg.Camera.Device,
			Width:  cfg.Camera.Width,
			Height: cfg.Camera.Height,
		},
		Surface:   surface,
		Phone:     phone,
		Submitter: submitter,
		Notifier:  client.TerminalNotifier{In: in, Out: os.Stdout},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := station.AcquireStream(ctx); err != nil {
		return err
	}
	defer station.Close()

	// Stdin reads cannot be interrupted, so release the camera and leave on a signal.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
		station.Close()
		os.Exit(130)
	}()

	size := surface.Bounds().Size()
	fmt.Printf("Camera %s ready (%dx%d), submitting to %s\n", cfg.Camera.Device, size.X, size.Y, cfg.Endpoint.URL)
	for {
		fmt.Print("Press Enter to capture (q to quit): ")
		line, err := in.ReadString('\n')
		if err != nil || strings.EqualFold(strings.TrimSpace(line), "q") {
			return nil
		}

		if err := station.CaptureFrame(ctx); err != nil {
			reportCaptureError(err)
		}
	}
}

// reportCaptureError prints problems the notifier did not already show.
// The station logs every failure itself.
func reportCaptureError(err error) {
	var verr *attendance.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Printf("  %s\n", verr.Reason)
	case errors.Is(err, capture.ErrStreamClosed):
		fmt.Println("  Camera stream ended, restart to continue")
	case errors.Is(err, capture.ErrNoFrame):
		fmt.Println("  No frame available yet, try again")
	}
}
