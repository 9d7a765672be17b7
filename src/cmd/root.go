// Package cmd implements the CLI commands for mvm
package cmd

import (
	"fmt"
	"os"

	"github.com/mvmtool/mvm/src/internal/tui"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mvm",
	Short: "Maven Version Manager",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetVerbose(verbose)
		ui.CheckVerboseEnv()
	},
	// Commands report their own failures through ui.Error
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if len(os.Args) == 1 {
		_ = customUsage(rootCmd)
		os.Exit(1)
	}

	// --version or -v in first position only, so flags of subcommands stay theirs
	if isVersionFlag(os.Args[1:]) {
		versionCmd.Run(versionCmd, []string{})
		return
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

// isVersionFlag reports whether args start with --version or -v
func isVersionFlag(args []string) bool {
	return len(args) > 0 && (args[0] == "--version" || args[0] == "-v")
}

func init() {
	// Hide the completion command until we implement it
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Add global verbose flag
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")

	// Set custom usage and help functions with TUI table for commands
	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})
}

func customUsage(cmd *cobra.Command) error {
	const tableWidth = 80

	if cmd != rootCmd {
		fmt.Println(cmd.Long)
		fmt.Println()
		fmt.Printf("Usage:\n  %s\n", cmd.UseLine())
		return nil
	}

	// Print header box with title and description
	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.SetMinWidth(tableWidth)
	headerTable.AddRow("mvm installs Apache Maven versions side by side and selects the one")
	headerTable.AddRow("the mvn command runs.")

	fmt.Println(headerTable.Render())
	fmt.Println()

	// Build commands table
	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")
	table.SetMinWidth(tableWidth)

	for _, c := range cmd.Commands() {
		// Skip hidden commands and completion
		if c.Hidden || c.Name() == "completion" || c.Name() == "help" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	fmt.Println(table.Render())

	return nil
}
