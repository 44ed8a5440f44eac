package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dabtools/dabrowse/internal/tui"
	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/fetch"
	"github.com/dabtools/dabrowse/pkg/freshness"
	"github.com/dabtools/dabrowse/pkg/scope"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive submission browser",
	Long:  "Opens the interactive terminal browser. Starts on the global view unless --video or --user is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, _ := cmd.Flags().GetString("video")
		userID, _ := cmd.Flags().GetString("user")
		if videoID != "" && userID != "" {
			return fmt.Errorf("--video and --user are mutually exclusive")
		}

		origin, err := serverOrigin()
		if err != nil {
			return err
		}

		client := api.NewClient(origin)

		logoCtx, cancelLogo := context.WithTimeout(context.Background(), 10*time.Second)
		origin.DiscoverLogo(logoCtx, client.HTTPClient())
		cancelLogo()

		initial := scope.Global()
		if videoID != "" {
			initial = scope.Video(videoID)
		} else if userID != "" {
			initial = scope.User(userID)
		}

		var p *tea.Program
		fetcher := fetch.New(client, func() {
			p.Send(tui.ResultMsg{})
		})
		tracker := freshness.NewTracker(client, freshness.DefaultInterval, func(freshness.Timestamp) {
			p.Send(tui.FreshnessMsg{})
		})

		p = tea.NewProgram(tui.New(origin, fetcher, tracker, initial), tea.WithAltScreen())

		pollCtx, cancelPoll := context.WithCancel(context.Background())
		defer cancelPoll()
		tracker.Start(pollCtx)

		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().String("video", "", "Open scoped to a video ID")
	browseCmd.Flags().String("user", "", "Open scoped to a user ID")
}
