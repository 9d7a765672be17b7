package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Setting keys as they appear in config.json
const (
	KeyMavenPath    = "MAVEN_PATH"
	KeyVersionToUse = "VERSION_TO_USE"
)

// MirrorSetting is a user-supplied download source
type MirrorSetting struct {
	URL       string `json:"url"`
	Versioned bool   `json:"versioned"`
}

// Settings is the persisted configuration.
// Fields are declared in key order so the file is written with sorted keys.
type Settings struct {
	MavenPath    string          `json:"MAVEN_PATH"`
	Mirrors      []MirrorSetting `json:"MIRRORS,omitempty"`
	VersionToUse string          `json:"VERSION_TO_USE,omitempty"`
}

// Store reads and writes Settings at a fixed file path
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the Store for the per-user config file
func DefaultStore() *Store {
	return NewStore(DefaultPaths().ConfigFile)
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields empty settings.
// Comments and trailing commas are tolerated in hand-edited files.
func (s *Store) Load() (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		ui.Debug("No config file at %s, starting empty", s.path)
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) == 0 {
		return settings, nil
	}

	if err := json5.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	return settings, nil
}

// Save writes the settings file, creating its directory if needed
func (s *Store) Save(settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Debug("Saved config to %s", s.path)
	return nil
}

// SetVersionToUse persists a new default version path, leaving other settings untouched
func (s *Store) SetVersionToUse(path string) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	settings.VersionToUse = path
	return s.Save(settings)
}

// LoadWithInstallRoot loads settings and makes sure MAVEN_PATH is usable.
// An empty MAVEN_PATH is asked for through prompter and persisted; a nil
// prompter turns that case into a MissingValueError. A MAVEN_PATH that
// does not exist is cleared, so the next run prompts again, and reported
// as a PathNotFoundError.
func (s *Store) LoadWithInstallRoot(prompter ui.Prompter) (*Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return nil, err
	}

	if settings.MavenPath == "" {
		if prompter == nil {
			return nil, &MissingValueError{Key: KeyMavenPath}
		}

		answer, err := prompter.Prompt(
			"Path where mvm will install the Maven versions",
			"Saved to "+s.path,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to read install path: %w", err)
		}
		if abs, err := filepath.Abs(answer); err == nil {
			answer = abs
		}

		settings.MavenPath = answer
		if err := s.Save(settings); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(settings.MavenPath); err != nil {
		missing := settings.MavenPath
		settings.MavenPath = ""
		if saveErr := s.Save(settings); saveErr != nil {
			ui.Debug("Failed to reset %s: %v", KeyMavenPath, saveErr)
		}
		return nil, &PathNotFoundError{Path: missing}
	}

	return settings, nil
}
