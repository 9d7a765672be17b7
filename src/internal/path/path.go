// Package path provides utilities for PATH environment variable lookups
package path

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mvmtool/mvm/src/internal/constants"
)

// IsInPath checks if a directory is in the system PATH
func IsInPath(dir string) bool {
	dir = filepath.Clean(dir)

	for _, p := range filepath.SplitList(os.Getenv("PATH")) {
		if p == "" {
			continue
		}
		if samePath(filepath.Clean(p), dir) {
			return true
		}
	}

	return false
}

// FindExecutable searches PATH for name, skipping the exclude directory.
// Returns "" when nothing is found.
func FindExecutable(name, exclude string) string {
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		if exclude != "" && samePath(filepath.Clean(dir), filepath.Clean(exclude)) {
			continue
		}

		if runtime.GOOS == constants.OSWindows {
			// Windows: try .exe, .cmd, .bat extensions
			for _, ext := range []string{constants.ExtExe, constants.ExtCmd, ".bat"} {
				candidate := filepath.Join(dir, name+ext)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return candidate
				}
			}
			continue
		}

		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return candidate
		}
	}

	return ""
}

func samePath(a, b string) bool {
	if runtime.GOOS == constants.OSWindows {
		return strings.EqualFold(a, b)
	}
	return a == b
}
