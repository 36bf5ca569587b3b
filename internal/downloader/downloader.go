package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brogergvhs/novelpiad/internal/library"
	"github.com/brogergvhs/novelpiad/internal/providers"
	"github.com/brogergvhs/novelpiad/internal/render"
	"github.com/brogergvhs/novelpiad/internal/ui"
)

var ErrNothingSelected = errors.New("no episodes selected")

type Options struct {
	// SkipExisting leaves episodes alone whose text file is already on disk.
	SkipExisting bool
	Range        string
	List         string
	// Referer is sent with image requests.
	Referer string
}

type Downloader struct {
	client   *http.Client
	src      providers.Source
	lib      *library.Library
	log      *ui.Logger
	opts     Options
	stats    *ui.Stats
	progress *ui.ProgressHandle
}

func New(c *http.Client, src providers.Source, lib *library.Library, log *ui.Logger, opts Options) *Downloader {
	if log == nil {
		log = ui.NewLogger(false)
	}

	return &Downloader{
		client: c,
		src:    src,
		lib:    lib,
		log:    log,
		opts:   opts,
		stats:  &ui.Stats{},
	}
}

func (d *Downloader) SetProgress(h *ui.ProgressHandle) {
	d.progress = h
}

func (d *Downloader) Stats() *ui.Stats {
	return d.stats
}

// DownloadAll collects every episode id of a work and downloads them one by
// one. The first failure stops the run; episodes written before it stay.
func (d *Downloader) DownloadAll(ctx context.Context, workID int) error {
	ids, err := d.src.EpisodeIDs(ctx, workID)
	if err != nil {
		return err
	}

	d.log.Infof("Found %d episodes for novel %d\n", len(ids), workID)

	selected := providers.Filter(ids, d.opts.Range, d.opts.List)
	if len(selected) == 0 {
		return ErrNothingSelected
	}

	d.progress.SetTotal(len(selected))

	for i, id := range selected {
		if err := d.DownloadEpisode(ctx, id); err != nil {
			d.progress.Abort()
			return fmt.Errorf("episode %d (%d/%d): %w", id, i+1, len(selected), err)
		}

		d.progress.Update(i+1, d.stats.TotalBytes.Load())
	}

	d.progress.MarkDone()
	return nil
}

// DownloadEpisode fetches metadata, then content, renders it (saving images
// as they appear) and finally writes the text file.
func (d *Downloader) DownloadEpisode(ctx context.Context, episodeID int) error {
	ep, err := d.src.EpisodeMeta(ctx, episodeID)
	if err != nil {
		return err
	}

	entry := d.log.WithField("episode", episodeID)

	if d.opts.SkipExisting {
		exists, err := d.lib.TextExists(ep.WorkTitle, ep.Number, ep.Title)
		if err != nil {
			return err
		}
		if exists {
			entry.Debugf("Skipping %s, already on disk", library.EpisodeFileName(ep.Number, ep.Title))
			d.stats.Skipped.Add(1)
			return nil
		}
	}

	ep.Segments, err = d.src.EpisodeSegments(ctx, episodeID)
	if err != nil {
		return err
	}

	data, err := render.Render(ctx, ep, d)
	if err != nil {
		return err
	}

	path, err := d.lib.SaveText(ep.WorkTitle, ep.Number, ep.Title, data)
	if err != nil {
		return err
	}

	entry.Infof("Saved %s", path)
	d.stats.TotalEpisodes.Add(1)
	d.stats.TotalBytes.Add(int64(len(data)))

	return nil
}

// SaveImage implements render.ImageSink.
func (d *Downloader) SaveImage(ctx context.Context, ep *providers.Episode, filename, src string) error {
	data, err := d.fetchImage(ctx, ImageURL(src))
	if err != nil {
		return err
	}

	path, err := d.lib.SaveImage(ep.WorkTitle, filename, data)
	if err != nil {
		return err
	}

	d.log.Debugf("Saved image %s\n", path)
	d.stats.TotalImages.Add(1)

	return nil
}
