package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/table"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the server's last-update time",
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := serverOrigin()
		if err != nil {
			return err
		}

		client := api.NewRetryingClient(origin)
		status, err := client.Status(context.Background())
		if err != nil {
			return err
		}

		updated := time.UnixMilli(status.LastUpdated).UTC()
		ago := int(time.Since(updated).Minutes())
		fmt.Printf("Last update: %s UTC (%d minutes ago)\n", updated.Format(table.TimeFormat), ago)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
