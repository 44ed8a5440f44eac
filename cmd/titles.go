package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dabtools/dabrowse/pkg/scope"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Print title submissions",
	Long:  "Fetches title submissions for the selected scope and prints them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, scope.Titles)
	},
}

func init() {
	rootCmd.AddCommand(titlesCmd)
	addDumpFlags(titlesCmd)
}
