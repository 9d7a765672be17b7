package cmd

import (
	"fmt"

	"github.com/mvmtool/mvm/src/internal/tui"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/mvmtool/mvm/src/internal/versions"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Maven versions",
	Long: `List every Maven version found under the install root. The version the
mvn command runs is marked as (default).

Examples:
  mvm list
  mvm list --paths    # Show a table with installation directories`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList()
	},
}

var listPathsFlag bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listPathsFlag, "paths", "p", false, "Show installation directories in a table")
}

// runList prints the installed versions in version order
func runList() error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	registry, err := env.installer.Scan()
	if err != nil {
		return err
	}

	entries := registry.Entries()
	if len(entries) == 0 {
		ui.Info("No versions installed in %s", env.installer.Root())
		return nil
	}

	defaultEntry, hasDefault := registry.FindByPath(env.settings.VersionToUse)

	if listPathsFlag {
		fmt.Println(renderVersionTable(entries, defaultEntry.Path))
		return nil
	}

	ui.Header("Installed Maven versions:")
	for _, entry := range entries {
		if hasDefault && entry.Path == defaultEntry.Path {
			ui.Printf("  - %s (default)\n", ui.HighlightVersion(entry.Version))
		} else {
			ui.Printf("  - %s\n", ui.HighlightVersion(entry.Version))
		}
	}

	return nil
}

// renderVersionTable lays entries out with their paths, highlighting the default
func renderVersionTable(entries []versions.Entry, defaultPath string) string {
	table := tui.NewTable("Version", "Path")
	table.SetTitle("Installed Maven versions")

	for _, entry := range entries {
		if defaultPath != "" && entry.Path == defaultPath {
			table.AddActiveRow(entry.Version+" (default)", entry.Path)
		} else {
			table.AddRow(entry.Version, entry.Path)
		}
	}

	return table.Render()
}
