// Package maven installs, removes and selects Maven versions under an install root
package maven

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	goruntime "runtime"

	"github.com/google/uuid"
	"github.com/mvmtool/mvm/src/internal/constants"
	"github.com/mvmtool/mvm/src/internal/download"
	"github.com/mvmtool/mvm/src/internal/mirror"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/mvmtool/mvm/src/internal/versions"
)

// InstallResult is the non-error outcome of Install
type InstallResult int

const (
	// Installed means the version was downloaded and extracted
	Installed InstallResult = iota
	// AlreadyInstalled means the version was present and nothing was done
	AlreadyInstalled
)

// RemoveResult is the non-error outcome of Remove
type RemoveResult int

const (
	// Removed means the installation directory was deleted
	Removed RemoveResult = iota
	// NotInstalled means the version was absent and nothing was done
	NotInstalled
)

// Scanner builds a fresh registry from an install root
type Scanner interface {
	Scan(root string) (*versions.Registry, error)
}

// DefaultRecorder persists the path of the default version
type DefaultRecorder interface {
	SetVersionToUse(path string) error
}

// Options configures an Installer
type Options struct {
	Root     string           // Install root holding one directory per version
	Scanner  Scanner          // Required
	Resolver *mirror.Resolver // nil means mirror.DefaultSources
	Client   *http.Client     // nil means http.DefaultClient
	Defaults DefaultRecorder  // Required by Use
}

// Installer manages the versions under one install root. Every operation
// starts from a fresh scan; nothing is cached between calls.
type Installer struct {
	root     string
	scanner  Scanner
	resolver *mirror.Resolver
	client   *http.Client
	defaults DefaultRecorder
}

// NewInstaller creates an Installer
func NewInstaller(opts Options) *Installer {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = mirror.NewResolver(nil)
	}
	return &Installer{
		root:     opts.Root,
		scanner:  opts.Scanner,
		resolver: resolver,
		client:   opts.Client,
		defaults: opts.Defaults,
	}
}

// Root returns the install root
func (i *Installer) Root() string {
	return i.root
}

// Scan returns the versions currently on disk
func (i *Installer) Scan() (*versions.Registry, error) {
	return i.scanner.Scan(i.root)
}

// DefaultEntry returns the installed entry whose path is defaultPath
func (i *Installer) DefaultEntry(defaultPath string) (versions.Entry, bool, error) {
	registry, err := i.Scan()
	if err != nil {
		return versions.Entry{}, false, err
	}
	entry, ok := registry.FindByPath(defaultPath)
	return entry, ok, nil
}

// Install downloads version from the first mirror that serves it and
// unpacks it into the install root. Mirrors are tried strictly in order;
// any failure (connection, non-200 status, bad archive) moves on to the
// next one. When all of them fail a *SourcesExhaustedError carrying the
// last failure is returned. A conflict inside the install root stops the
// loop, since another mirror cannot resolve it.
func (i *Installer) Install(version string) (InstallResult, error) {
	if err := validateVersion(version); err != nil {
		return 0, err
	}

	registry, err := i.Scan()
	if err != nil {
		return 0, err
	}
	if registry.Has(version) {
		ui.Debug("Maven %s already present, skipping download", version)
		return AlreadyInstalled, nil
	}

	urls := i.resolver.CandidateURLs(version)
	exhausted := &SourcesExhaustedError{Version: version}

	for idx, url := range urls {
		if idx > 0 {
			ui.Debug("Retrying with alternative source (%d/%d)", idx+1, len(urls))
		}
		exhausted.Tried = append(exhausted.Tried, url)

		if err := i.installFrom(url, version); err != nil {
			if errors.Is(err, download.ErrTargetExists) {
				return 0, err
			}
			if download.IsHTTPStatus(err) {
				ui.Debug("Source %s does not serve Maven %s: %v", url, version, err)
			} else {
				ui.Debug("Source %s failed: %v", url, err)
			}
			exhausted.LastErr = err
			continue
		}

		return Installed, nil
	}

	return 0, exhausted
}

// installFrom performs one download-and-extract attempt. Temporary files
// live inside the install root so the final move is a rename on the same
// filesystem; they are removed whatever the outcome.
func (i *Installer) installFrom(url, version string) error {
	id := uuid.NewString()
	archivePath := filepath.Join(i.root, fmt.Sprintf(".%s.%s.part", constants.ArchiveName(version), id))
	stagingDir := filepath.Join(i.root, ".mvm-staging-"+id)
	defer func() {
		_ = os.Remove(archivePath)
		_ = os.RemoveAll(stagingDir)
	}()

	ui.Debug("Trying %s", url)
	if err := download.File(i.client, url, archivePath); err != nil {
		return err
	}

	ui.Info("Installing version '%s'.", version)

	err := ui.WithSpinner("Extracting archive...", "Archive extracted", func() error {
		return download.ExtractZip(archivePath, stagingDir)
	})
	if err != nil {
		return err
	}

	if err := os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		ui.Debug("Failed to remove %s: %v", archivePath, err)
	}

	// Install already ruled out a registered install of this version, so
	// a directory under its name is left over from an interrupted install.
	if err := i.clearIncomplete(stagingDir, version); err != nil {
		return err
	}

	moved, err := download.MoveEntries(stagingDir, i.root)
	if err != nil {
		return fmt.Errorf("failed to move extracted files into %s: %w", i.root, err)
	}

	if goruntime.GOOS != constants.OSWindows {
		for _, name := range moved {
			if err := download.MakeExecutable(filepath.Join(i.root, name)); err != nil {
				return fmt.Errorf("failed to mark %s executable: %w", name, err)
			}
		}
	}

	ui.Debug("Installed %v into %s", moved, i.root)
	return nil
}

// clearIncomplete removes root/apache-maven-<version> when the archive
// brings a replacement for it
func (i *Installer) clearIncomplete(stagingDir, version string) error {
	name := constants.InstallDirName(version)
	if _, err := os.Stat(filepath.Join(stagingDir, name)); err != nil {
		return nil
	}

	target := filepath.Join(i.root, name)
	if _, err := os.Lstat(target); err != nil {
		return nil
	}

	ui.Warning("Replacing incomplete installation at %s", target)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to remove incomplete installation %s: %w", target, err)
	}
	return nil
}

// Remove deletes the installation directory of version
func (i *Installer) Remove(version string) (RemoveResult, error) {
	registry, err := i.Scan()
	if err != nil {
		return 0, err
	}

	entry, ok := registry.Get(version)
	if !ok {
		return NotInstalled, nil
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Removing %s...", entry.Path))
	spinner.Start()
	if err := os.RemoveAll(entry.Path); err != nil {
		spinner.Error("Failed to remove version")
		return 0, fmt.Errorf("failed to remove %s: %w", entry.Path, err)
	}
	spinner.Stop()

	return Removed, nil
}

// Use makes version the default, installing it first when it is missing.
// Installation is attempted at most once; if it fails the persisted
// default is left as it was.
func (i *Installer) Use(version string) (versions.Entry, error) {
	if i.defaults == nil {
		return versions.Entry{}, errors.New("no default version store configured")
	}

	registry, err := i.Scan()
	if err != nil {
		return versions.Entry{}, err
	}

	entry, ok := registry.Get(version)
	if !ok {
		ui.Info("Version '%s' is not installed. Will be installed.", version)
		if _, err := i.Install(version); err != nil {
			return versions.Entry{}, err
		}

		registry, err = i.Scan()
		if err != nil {
			return versions.Entry{}, err
		}
		entry, ok = registry.Get(version)
		if !ok {
			return versions.Entry{}, fmt.Errorf("maven %s was installed but no %s directory was found in %s",
				version, constants.InstallDirName(version), i.root)
		}
	}

	if err := i.defaults.SetVersionToUse(entry.Path); err != nil {
		return versions.Entry{}, fmt.Errorf("failed to save default version: %w", err)
	}

	return entry, nil
}
