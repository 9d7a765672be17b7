package ui

import (
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner with our color scheme.
// In verbose mode the animation is suppressed so debug lines stay readable.
type Spinner struct {
	spinner *spinner.Spinner
	message string
	quiet   bool
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14], // dots style
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(os.Stderr),
	)
	return &Spinner{spinner: s, message: message, quiet: verboseMode}
}

// Start starts the spinner
func (s *Spinner) Start() {
	if s.quiet {
		Debug("%s", s.message)
		return
	}
	s.spinner.Start()
}

// Stop stops the spinner
func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	Success("%s", message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	Error("%s", message)
}

// WithSpinner runs fn while a spinner shows message, then prints done on
// success or a failure line on error
func WithSpinner(message, done string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()

	if err := fn(); err != nil {
		s.Error(strings.TrimSuffix(message, "...") + " failed")
		return err
	}

	s.Success(done)
	return nil
}
