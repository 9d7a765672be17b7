package cmd

import (
	"github.com/mvmtool/mvm/src/internal/maven"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Set the Maven version the mvn command runs",
	Long: `Make a Maven version the default. A version that is not installed yet is
installed first.

Examples:
  mvm use 3.9.6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUse(args[0])
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}

// runUse records version as the default, installing it when missing
func runUse(version string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	entry, err := env.installer.Use(version)
	if err != nil {
		if maven.IsSourcesExhausted(err) {
			reportSourcesExhausted(err)
			ui.Info("The default version is unchanged.")
		}
		return err
	}

	ui.Debug("Default set to %s", entry.Path)
	ui.Success("Version %s will now be used.", version)
	return nil
}
