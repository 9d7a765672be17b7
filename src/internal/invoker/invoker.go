// Package invoker runs external executables and captures their output
package invoker

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mvmtool/mvm/src/internal/ui"
)

// Invoker runs an executable and returns its standard output
type Invoker interface {
	Execute(path string, args []string) (string, error)
}

// ExecInvoker spawns processes directly with an argument vector.
// No shell is involved, so arguments are never re-interpreted.
type ExecInvoker struct{}

// New returns the default process invoker
func New() *ExecInvoker {
	return &ExecInvoker{}
}

// Execute runs path with args and waits for it to exit. Standard output is
// returned even when the process fails, alongside an error describing the
// failure. Standard error is kept apart and only shown in verbose mode.
func (ExecInvoker) Execute(path string, args []string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	ui.Debug("Running %s %s", path, strings.Join(args, " "))
	err := cmd.Run()

	if stderr.Len() > 0 {
		ui.Debug("%s stderr: %s", path, strings.TrimSpace(stderr.String()))
	}

	if err != nil {
		return stdout.String(), fmt.Errorf("failed to run %s: %w", path, err)
	}

	return stdout.String(), nil
}

// FirstLine returns the first line of output without its line ending
func FirstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimRight(line, "\r")
}
