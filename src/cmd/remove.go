package cmd

import (
	"github.com/mvmtool/mvm/src/internal/maven"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <version>",
	Aliases: []string{"uninstall"},
	Short:   "Remove an installed Maven version",
	Long: `Delete the installation directory of a Maven version.

Examples:
  mvm remove 3.8.8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

// runRemove deletes version; a version that is not installed is not an error
func runRemove(version string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	wasDefault := false
	if env.settings.VersionToUse != "" {
		if entry, ok, err := env.installer.DefaultEntry(env.settings.VersionToUse); err == nil && ok {
			wasDefault = entry.Version == version
		}
	}

	result, err := env.installer.Remove(version)
	if err != nil {
		return err
	}

	if result == maven.NotInstalled {
		ui.Info("Version '%s' is not installed.", version)
		return nil
	}

	ui.Success("Successfully removed version '%s'.", version)
	if wasDefault {
		ui.Warning("Version '%s' was the default. Run 'mvm use <version>' to select another one.", version)
	}

	return nil
}
