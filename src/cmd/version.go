package cmd

import (
	"fmt"

	"github.com/mvmtool/mvm/src/internal/tui"
	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the mvm version",
	Long:  `Display the current version of mvm.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := fmt.Sprintf("mvm %s", tui.RenderVersion(Version))
		fmt.Println(tui.RenderInfoBox(content))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
