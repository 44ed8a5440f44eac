package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dabtools/dabrowse/pkg/scope"
)

var thumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "Print thumbnail submissions",
	Long:  "Fetches thumbnail submissions for the selected scope and prints them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, scope.Thumbnails)
	},
}

func init() {
	rootCmd.AddCommand(thumbnailsCmd)
	addDumpFlags(thumbnailsCmd)
}
