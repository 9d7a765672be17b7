package maven

import (
	"errors"
	"fmt"
	"strings"
)

// SourcesExhaustedError is returned when no mirror yielded a usable archive
type SourcesExhaustedError struct {
	Version string
	Tried   []string // URLs attempted, in order
	LastErr error
}

func (e *SourcesExhaustedError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf("no download source available for Maven %s", e.Version)
	}
	return fmt.Sprintf("all %d download sources failed for Maven %s: %v", len(e.Tried), e.Version, e.LastErr)
}

// Unwrap exposes the last underlying failure
func (e *SourcesExhaustedError) Unwrap() error {
	return e.LastErr
}

// IsSourcesExhausted checks if an error means every mirror failed
func IsSourcesExhausted(err error) bool {
	var target *SourcesExhaustedError
	return errors.As(err, &target)
}

// ErrInvalidVersion is returned for empty or path-like version arguments
var ErrInvalidVersion = errors.New("invalid version")

// validateVersion rejects values that could not name an archive
func validateVersion(version string) error {
	if version == "" || strings.ContainsAny(version, `/\`) || strings.TrimSpace(version) != version || version == "." || version == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	return nil
}
