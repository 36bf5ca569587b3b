package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/brogergvhs/novelpiad/internal/config"
	"github.com/brogergvhs/novelpiad/internal/downloader"
	"github.com/brogergvhs/novelpiad/internal/ui"

	"github.com/spf13/cobra"
)

var flagEpisodeOutput string

func init() {
	episodeCmd := &cobra.Command{
		Use:     "episode <episode_id>",
		Short:   "Download a single episode by its viewer id",
		Example: "  novelpiad episode 1234567",
		Args:    cobra.ExactArgs(1),
		RunE:    runEpisode,
	}

	episodeCmd.Flags().StringVar(&flagEpisodeOutput, "output", "", "output folder; one sub-folder per work title")

	addSiteFlags(episodeCmd)
	rootCmd.AddCommand(episodeCmd)
}

func runEpisode(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return fmt.Errorf("invalid episode id %q", args[0])
	}

	s, err := newSession(config.Options{Output: flagEpisodeOutput})
	if err != nil {
		return err
	}
	defer s.Close()

	// a single explicit request always rewrites the file
	s.cfg.SkipExisting = false

	return withOutput(cmd.Context(), s, func(ctx context.Context, dl *downloader.Downloader, _ *ui.MPBProgressManager) error {
		return dl.DownloadEpisode(ctx, id)
	})
}
