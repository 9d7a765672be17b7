package versions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	goruntime "runtime"

	"github.com/mvmtool/mvm/src/internal/constants"
	"github.com/mvmtool/mvm/src/internal/invoker"
	"github.com/mvmtool/mvm/src/internal/ui"
)

var (
	// dirNamePattern matches directories laid out by the Maven archive
	dirNamePattern = regexp.MustCompile(`^` + regexp.QuoteMeta(constants.ArchivePrefix) + `(.+)$`)

	// reportedVersionPattern finds a MAJOR.MINOR.PATCH token in `mvn -v` output
	reportedVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)
)

// ExecutableName returns the Maven launcher file name for this platform
func ExecutableName() string {
	if goruntime.GOOS == constants.OSWindows {
		return constants.BinaryMaven + constants.ExtCmd
	}
	return constants.BinaryMaven
}

// ExecutablePath returns the launcher path inside an installation directory
func ExecutablePath(installPath string) string {
	return filepath.Join(installPath, constants.BinDir, ExecutableName())
}

// Scanner builds a Registry from the subdirectories of an install root
type Scanner struct {
	invoker invoker.Invoker
}

// NewScanner creates a scanner that falls back to inv to ask a launcher for its version
func NewScanner(inv invoker.Invoker) *Scanner {
	return &Scanner{invoker: inv}
}

// Scan inspects every immediate subdirectory of root. A directory counts as
// an installation when it holds an executable bin/mvn. Its version comes
// from the directory name when it follows the archive layout, otherwise
// from the first line of `mvn -v`. Directories whose version cannot be
// determined are skipped without error. When two directories report the
// same version, the one iterated last wins.
func (s *Scanner) Scan(root string) (*Registry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("install root '%s' does not exist: %w", root, err)
		}
		return nil, fmt.Errorf("failed to read install root: %w", err)
	}

	registry := NewRegistry()
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())

		// Follow symlinked installs, skip plain files
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		executable := ExecutablePath(dir)
		if !isExecutable(executable) {
			ui.Debug("Skipping %s: no %s", dir, executable)
			continue
		}

		version, ok := s.detectVersion(entry.Name(), executable)
		if !ok {
			ui.Debug("Skipping %s: could not determine version", dir)
			continue
		}

		if previous, exists := registry.Get(version); exists {
			ui.Debug("Version %s found in both %s and %s, keeping the latter", version, previous.Path, dir)
		}
		registry.Add(Entry{Version: version, Path: dir})
	}

	return registry, nil
}

// detectVersion tries the directory name first and the launcher second
func (s *Scanner) detectVersion(dirName, executable string) (string, bool) {
	if version, ok := VersionFromDirName(dirName); ok {
		return version, true
	}

	if s.invoker == nil {
		return "", false
	}

	output, err := s.invoker.Execute(executable, []string{constants.VersionFlag})
	if err != nil {
		ui.Debug("%v", err)
	}

	return VersionFromOutput(output)
}

// VersionFromDirName extracts the version from an apache-maven-<version> name
func VersionFromDirName(name string) (string, bool) {
	matches := dirNamePattern.FindStringSubmatch(name)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}

// VersionFromOutput extracts a MAJOR.MINOR.PATCH token from the first line of output
func VersionFromOutput(output string) (string, bool) {
	version := reportedVersionPattern.FindString(invoker.FirstLine(output))
	return version, version != ""
}
