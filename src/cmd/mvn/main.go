// Package main implements the mvn proxy that runs the default Maven version
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mvmtool/mvm/src/internal/config"
	"github.com/mvmtool/mvm/src/internal/constants"
	"github.com/mvmtool/mvm/src/internal/path"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/mvmtool/mvm/src/internal/versions"
)

func main() {
	ui.CheckVerboseEnv()
	os.Exit(run(config.DefaultStore(), os.Args[1:]))
}

// run resolves the default launcher and executes it, returning the exit code
func run(store *config.Store, args []string) int {
	launcher, err := resolveLauncher(store)
	if err != nil {
		reportError(err)
		return 1
	}

	ui.Debug("Executing %s %v", launcher, args)
	return executeCommand(launcher, args)
}

// resolveLauncher returns the mvn executable of the persisted default version
func resolveLauncher(store *config.Store) (string, error) {
	settings, err := store.Load()
	if err != nil {
		return "", err
	}

	if settings.VersionToUse == "" {
		return "", &config.MissingValueError{Key: config.KeyVersionToUse}
	}

	launcher := versions.ExecutablePath(settings.VersionToUse)
	if info, err := os.Stat(launcher); err != nil || info.IsDir() {
		return "", &config.PathNotFoundError{Path: launcher}
	}

	return launcher, nil
}

// reportError prints guidance for the failures users can fix with mvm
func reportError(err error) {
	var notFound *config.PathNotFoundError

	switch {
	case errors.Is(err, config.ErrConfigMissing):
		ui.Error("No default version set. Please use 'mvm use <version>' to select a default version.")
		if system := path.FindExecutable(constants.BinaryMaven, proxyDir()); system != "" {
			ui.Info("A Maven installation outside mvm exists at %s", system)
		}
	case errors.As(err, &notFound):
		ui.Error("Command cannot be executed because '%s' does not exist.", notFound.Path)
		ui.Info("Please use 'mvm use <version>' to select a valid version.")
	default:
		fmt.Fprintf(os.Stderr, "mvm proxy error: %v\n", err)
	}
}

// proxyDir is the directory holding this binary, so PATH lookups skip it
func proxyDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// executeCommand runs execPath with stdio attached and returns its exit code
func executeCommand(execPath string, args []string) int {
	cmd := exec.Command(execPath, args...)
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Command ran but returned non-zero: propagate the exit code
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		// Other errors (couldn't start, etc.) return 1
		fmt.Fprintf(os.Stderr, "mvm proxy error: failed to execute %s: %v\n", execPath, err)
		return 1
	}

	return 0
}
