package progress

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// SpinnerSink reports progress on stderr with a spinner for long-running stages
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
	stage   string

	// running tracks our own start/stop; spinner.Start is a no-op off a terminal
	running bool
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerSink{spinner: s, out: os.Stderr}
}

// OnProgress starts, updates or stops the spinner
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.stage = event.Stage

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		r.start()
		return
	}

	r.stop()
	if event.Message != "" {
		color.New(color.FgGreen).Fprintln(r.out, "✓ "+event.Message)
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// pause stops the spinner while print runs so lines are not interleaved
func (r *SpinnerSink) pause(print func()) {
	wasRunning := r.running
	r.stop()

	print()

	if wasRunning {
		r.start()
	}
}

func (r *SpinnerSink) start() {
	if !r.running {
		r.spinner.Start()
		r.running = true
	}
}

func (r *SpinnerSink) stop() {
	if r.running {
		r.spinner.Stop()
		r.running = false
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
