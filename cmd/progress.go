package cmd

import (
	"context"
	"os"
	"time"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/client"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/schollz/progressbar/v3"
)

// spinnerSubmitter shows a spinner on stderr while a submission is in flight.
type spinnerSubmitter struct {
	next client.Submitter
}

func (s spinnerSubmitter) Submit(ctx context.Context, req attendance.Request) (*attendance.Response, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Submitting attendance"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(constants.SpinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}()

	resp, err := s.next.Submit(ctx, req)
	close(done)
	<-stopped
	bar.Finish()
	return resp, err
}
