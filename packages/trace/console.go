package trace

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ConsoleSink prints one line per call, colorized by outcome.
type ConsoleSink struct {
	mu      sync.Mutex
	writer  io.Writer
	verbose bool
}

// ConsoleOption configures a ConsoleSink.
type ConsoleOption func(*ConsoleSink)

// WithWriter redirects output away from stdout.
func WithWriter(w io.Writer) ConsoleOption {
	return func(s *ConsoleSink) {
		s.writer = w
	}
}

// WithVerbose includes the request id in each line.
func WithVerbose(v bool) ConsoleOption {
	return func(s *ConsoleSink) {
		s.verbose = v
	}
}

// WithNoColor disables colorized output.
func WithNoColor(noColor bool) ConsoleOption {
	return func(s *ConsoleSink) {
		if noColor {
			color.NoColor = true
		}
	}
}

// NewConsoleSink creates a console sink writing to stdout.
func NewConsoleSink(opts ...ConsoleOption) *ConsoleSink {
	s := &ConsoleSink{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ConsoleSink) Record(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mark := color.GreenString("✓")
	if event.Err != nil {
		mark = color.RedString("✗")
	}

	fmt.Fprintf(s.writer, "%s %s %s", mark, event.Method, event.URL)
	if event.StatusCode > 0 {
		fmt.Fprintf(s.writer, " %d", event.StatusCode)
	}
	fmt.Fprintf(s.writer, " (%dms)", event.Duration.Milliseconds())
	if s.verbose {
		fmt.Fprintf(s.writer, " [%s]", event.RequestID)
	}
	if event.Err != nil {
		fmt.Fprintf(s.writer, " %s", color.RedString("%s", event.Err))
	}
	fmt.Fprintln(s.writer)
}
