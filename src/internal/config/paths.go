// Package config manages mvm configuration: where it lives on disk and
// the persisted settings (install root and default version).
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Paths holds the mvm per-user locations
type Paths struct {
	Config     string // Config directory (<user config dir>/mvm)
	ConfigFile string // Persisted settings (<config dir>/config.json)
}

// ConfigDirEnv overrides the config directory when set
const ConfigDirEnv = "MVM_CONFIG_DIR"

// ConfigFileName is the name of the persisted settings file
const ConfigFileName = "config.json"

// AppDirName is the directory created under the user config directory
const AppDirName = "mvm"

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the default mvm paths.
// This function is thread-safe and guarantees single initialization.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = initPaths()
	})
	return defaultPaths
}

func initPaths() *Paths {
	dir := getConfigDir()
	return &Paths{
		Config:     dir,
		ConfigFile: filepath.Join(dir, ConfigFileName),
	}
}

// getConfigDir returns the mvm config directory
func getConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}

	base, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the home directory, then to the working directory
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "." + AppDirName
		}
		return filepath.Join(home, "."+AppDirName)
	}

	return filepath.Join(base, AppDirName)
}

// ResetPathsCache resets the cached paths, forcing reinitialization on next access.
// This is primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
