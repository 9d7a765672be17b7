// Package download provides utilities for downloading and extracting Maven archives
package download

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// ShowProgress controls whether downloads draw a progress bar
var ShowProgress = true

// HTTPStatusError is returned when a server answers with anything but 200 OK
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("download failed (HTTP %s): %s", e.Status, e.URL)
}

// IsHTTPStatus checks if an error was caused by a non-200 response
func IsHTTPStatus(err error) bool {
	var target *HTTPStatusError
	return errors.As(err, &target)
}

// File downloads url to destPath. Only a 200 OK response is accepted; the
// destination file is created only once such a response has arrived.
// A nil client means http.DefaultClient.
func File(client *http.Client, url, destPath string) error {
	if client == nil {
		client = http.DefaultClient
	}

	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	resp, err := client.Get(url)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		return fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}
	defer func() { _ = resp.Body.Close() }()

	ui.Debug("HTTP response: %s", resp.Status)

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	size := resp.ContentLength
	ui.Debug("Content-Length: %d bytes", size)

	var bar *progressbar.ProgressBar
	if ShowProgress {
		bar = progressbar.DefaultBytes(size, "Downloading")
	} else {
		bar = progressbar.DefaultBytesSilent(size, "Downloading")
	}

	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		ui.Debug("Download failed: %v", err)
		return fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if ShowProgress {
		fmt.Println() // New line after progress bar
	}

	if err := out.Close(); err != nil {
		return err
	}

	ui.Debug("Download complete: %s", destPath)
	return nil
}
