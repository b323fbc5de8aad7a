package cmd

import (
	"context"
	"os"

	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/client"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <image-file>",
	Short: "Submit attendance with a photo from disk",
	Long: `Rasterize an image file onto the capture surface and submit it once.

JPEG, PNG and BMP files are supported. Useful for testing an endpoint
without a camera.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	addStationFlags(submitCmd)
	submitCmd.MarkFlagRequired("phone")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadStationConfig(cmd)
	if err != nil {
		return err
	}

	surface, err := capture.NewSurface(cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.Quality)
	if err != nil {
		return err
	}
	submitter, err := newSubmitter(cfg)
	if err != nil {
		return err
	}

	station := client.NewStation(client.StationOptions{
		Device:    capture.StillDevice{Path: args[0]},
		Surface:   surface,
		Phone:     client.StaticPhone(mustGetString(cmd, "phone")),
		Submitter: submitter,
		Notifier:  client.PrintNotifier{Out: os.Stdout},
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := station.AcquireStream(ctx); err != nil {
		return err
	}
	defer station.Close()

	return station.CaptureFrame(ctx)
}
