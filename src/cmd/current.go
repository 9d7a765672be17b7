package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvmtool/mvm/src/internal/config"
	"github.com/mvmtool/mvm/src/internal/path"
	"github.com/mvmtool/mvm/src/internal/tui"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/mvmtool/mvm/src/internal/versions"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the default Maven version",
	Long: `Show the Maven version and installation directory the mvn command runs.

Examples:
  mvm current`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurrent()
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}

// runCurrent prints the default version, failing when none is usable
func runCurrent() error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	defaultPath := env.settings.VersionToUse
	if defaultPath == "" {
		ui.Info("Select one with: %s", ui.Highlight("mvm use <version>"))
		return &config.MissingValueError{Key: config.KeyVersionToUse}
	}

	launcher := versions.ExecutablePath(defaultPath)
	if _, err := os.Stat(launcher); err != nil {
		ui.Warning("The default installation is gone")
		ui.Info("Select another one with: %s", ui.Highlight("mvm use <version>"))
		return &config.PathNotFoundError{Path: launcher}
	}

	entry, ok, err := env.installer.DefaultEntry(defaultPath)
	if err != nil {
		return err
	}
	if ok {
		content := fmt.Sprintf("Maven %s\n%s", tui.RenderActiveVersion(entry.Version), tui.RenderMuted(entry.Path))
		fmt.Println(tui.RenderInfoBox(content))
	} else {
		content := fmt.Sprintf("Maven (unknown version)\n%s", tui.RenderMuted(defaultPath))
		fmt.Println(tui.RenderWarningBox(content))
		ui.Warning("%s is outside %s or reports no version", defaultPath, env.installer.Root())
	}

	warnIfProxyNotInPath()
	return nil
}

// warnIfProxyNotInPath warns when the directory holding mvm, and the mvn
// proxy shipped next to it, is not on PATH
func warnIfProxyNotInPath() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	dir := filepath.Dir(exe)
	if !path.IsInPath(dir) {
		ui.Warning("%s is not in PATH, so the mvn command may not run this version", dir)
	}
}
