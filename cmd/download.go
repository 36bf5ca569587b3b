package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brogergvhs/novelpiad/internal/config"
	"github.com/brogergvhs/novelpiad/internal/downloader"
	"github.com/brogergvhs/novelpiad/internal/library"
	"github.com/brogergvhs/novelpiad/internal/ui"
	"github.com/brogergvhs/novelpiad/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagNovel int
	flagRange string
	flagList  string

	// runtime
	flagOutput       string
	flagSkipExisting bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download every episode of a novel. Uses the defaults from the selected config, overwritten by CLI flags",
		Example: `  novelpiad download --novel 93020
  novelpiad download --novel 93020 --range 1-20 --output ~/novels`,
		Args: cobra.NoArgs,
		RunE: runDownload,
	}

	// selection
	downloadCmd.Flags().IntVar(&flagNovel, "novel", 0, "numeric novel id (the number in /novel/<id>)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of episodes by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific episode indices (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder; one sub-folder per work title")
	downloadCmd.Flags().BoolVar(&flagSkipExisting, "skip-existing", false, "skip episodes whose text file already exists")

	addSiteFlags(downloadCmd)
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	s, err := newSession(config.Options{
		Output:       flagOutput,
		DefaultNovel: flagNovel,
		DefaultRange: flagRange,
		DefaultList:  flagList,
		SkipExisting: flagSkipExisting,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("Config file: %s\n", s.usedPath)
	fmt.Println("Full config:")
	s.cfg.Print()
	fmt.Println()

	if s.cfg.DefaultNovel <= 0 {
		return fmt.Errorf("missing --novel and no default_novel in config")
	}

	return withOutput(cmd.Context(), s, func(ctx context.Context, dl *downloader.Downloader, pm *ui.MPBProgressManager) error {
		dl.SetProgress(pm.Register(fmt.Sprintf("Novel %d", s.cfg.DefaultNovel)))
		return dl.DownloadAll(ctx, s.cfg.DefaultNovel)
	})
}

// withOutput locks the output folder, wires interrupt handling and runs fn
// with a ready downloader. A summary is printed when fn succeeds.
func withOutput(
	parent context.Context,
	s *session,
	fn func(context.Context, *downloader.Downloader, *ui.MPBProgressManager) error,
) error {
	unlock, err := util.LockOutput(s.cfg.Output)
	if err != nil {
		return err
	}
	defer unlock()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	util.SetupInterruptHandler(s.cfg.Output, cancel)

	dl := downloader.New(s.client, s.src, library.NewOs(s.cfg.Output), s.log, downloader.Options{
		SkipExisting: s.cfg.SkipExisting,
		Range:        s.cfg.DefaultRange,
		List:         s.cfg.DefaultList,
		Referer:      s.cfg.BaseURL + "/",
	})

	pm := ui.NewProgressManager()
	start := time.Now()

	err = fn(ctx, dl, pm)
	pm.Close()

	if err != nil {
		util.CleanupPartialFiles(s.cfg.Output)
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %w", err)
		}
		return err
	}

	stats := dl.Stats()
	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Episodes: %d\n", stats.TotalEpisodes.Load())
	if skipped := stats.Skipped.Load(); skipped > 0 {
		fmt.Printf("Skipped:  %d\n", skipped)
	}
	fmt.Printf("Images:   %d\n", stats.TotalImages.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}
