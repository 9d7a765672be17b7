package cmd

import (
	"errors"
	"fmt"

	"github.com/mvmtool/mvm/src/internal/maven"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a Maven version",
	Long: `Download a Maven binary distribution and unpack it into the install root.
Mirrors are tried in order until one of them serves the archive.

Examples:
  mvm install 3.9.6
  mvm install 4.0.0-rc-4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(args[0])
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

// runInstall installs version unless it is already present
func runInstall(version string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	ui.Debug("Installing Maven %s into %s", version, env.installer.Root())

	result, err := env.installer.Install(version)
	if err != nil {
		reportSourcesExhausted(err)
		return fmt.Errorf("error installing version '%s': %w", version, err)
	}

	switch result {
	case maven.AlreadyInstalled:
		ui.Info("Version '%s' is already installed.", version)
	case maven.Installed:
		ui.Success("Successfully installed version '%s'.", version)
	}

	return nil
}

// reportSourcesExhausted lists the download URLs tried when every mirror failed
func reportSourcesExhausted(err error) {
	var exhausted *maven.SourcesExhaustedError
	if !errors.As(err, &exhausted) {
		return
	}

	ui.Warning("Tried %d download sources:", len(exhausted.Tried))
	for _, url := range exhausted.Tried {
		ui.Progress("%s", url)
	}
	if !ui.IsVerbose() {
		ui.Info("Run with --verbose to see why each source failed")
	}
}
