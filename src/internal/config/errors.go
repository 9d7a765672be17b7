package config

import (
	"errors"
	"fmt"
)

// ErrConfigMissing is matched by every MissingValueError
var ErrConfigMissing = errors.New("configuration value missing")

// MissingValueError is returned when a required setting is absent
type MissingValueError struct {
	Key string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// Is lets errors.Is(err, ErrConfigMissing) match
func (e *MissingValueError) Is(target error) bool {
	return target == ErrConfigMissing
}

// PathNotFoundError is returned when a configured or resolved path is absent on disk
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path '%s' does not exist", e.Path)
}

// IsPathNotFound checks if an error indicates a missing path.
func IsPathNotFound(err error) bool {
	var target *PathNotFoundError
	return errors.As(err, &target)
}
