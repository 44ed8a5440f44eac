package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/scope"
	"github.com/dabtools/dabrowse/pkg/table"
)

// addDumpFlags attaches the shared scope/output flags used by the titles and
// thumbnails commands.
func addDumpFlags(cmd *cobra.Command) {
	cmd.Flags().String("video", "", "Restrict to a video ID")
	cmd.Flags().String("user", "", "Restrict to a user ID")
	cmd.Flags().StringP("output", "o", "", "Output columns (s submitted, v video id, t title/timestamp, c score, o votes, u uuid, d user id). Empty prints an aligned table.")
	cmd.Flags().StringP("delimiter", "d", " ", "Delimiter between output columns")
}

func runDump(cmd *cobra.Command, kind scope.DetailKind) error {
	videoID, _ := cmd.Flags().GetString("video")
	userID, _ := cmd.Flags().GetString("user")
	output, _ := cmd.Flags().GetString("output")
	delimiter, _ := cmd.Flags().GetString("delimiter")

	if videoID != "" && userID != "" {
		return fmt.Errorf("--video and --user are mutually exclusive")
	}
	s := scope.Global()
	if videoID != "" {
		s = scope.Video(videoID)
	} else if userID != "" {
		s = scope.User(userID)
	}

	origin, err := serverOrigin()
	if err != nil {
		return err
	}
	req, err := scope.Resolve(origin, s, kind)
	if err != nil {
		return err
	}

	client := api.NewRetryingClient(origin)
	ctx := context.Background()

	var tbl table.Table
	switch kind {
	case scope.Thumbnails:
		thumbs, err := client.Thumbnails(ctx, req.URL)
		if err != nil {
			return fmt.Errorf("failed to fetch details from the API: %w", err)
		}
		tbl = table.Thumbnails(thumbs, req.HideVideoID, req.HideUserID)
	default:
		titles, err := client.Titles(ctx, req.URL)
		if err != nil {
			return fmt.Errorf("failed to fetch details from the API: %w", err)
		}
		tbl = table.Titles(titles, req.HideVideoID, req.HideUserID)
	}

	if output == "" {
		return table.PrintAligned(os.Stdout, tbl)
	}
	return table.Print(os.Stdout, tbl, output, delimiter)
}
