package providers

import (
	"context"
	"errors"

	"github.com/samber/mo"
)

// ErrUnexpectedMarkup is returned when a page no longer has the shape the
// scraper expects.
var ErrUnexpectedMarkup = errors.New("unexpected markup")

type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentImage
)

type Segment struct {
	Kind SegmentKind

	// Text holds the raw run for SegmentText.
	Text string

	// Src and FilenameHint are set for SegmentImage.
	Src          string
	FilenameHint mo.Option[string]
}

func TextSegment(s string) Segment {
	return Segment{Kind: SegmentText, Text: s}
}

func ImageSegment(src string, hint mo.Option[string]) Segment {
	return Segment{Kind: SegmentImage, Src: src, FilenameHint: hint}
}

type Episode struct {
	ID        int
	Number    string
	Title     string
	WorkTitle string
	Segments  []Segment
}

// Source is the narrow adapter over the upstream site. Only implementations
// know about markup and endpoints.
//
// EpisodeMeta returns an Episode without segments; EpisodeSegments fetches the
// body. They are separate so callers can decide to skip an episode before
// its content is requested.
type Source interface {
	EpisodeIDs(ctx context.Context, workID int) ([]int, error)
	EpisodeMeta(ctx context.Context, episodeID int) (*Episode, error)
	EpisodeSegments(ctx context.Context, episodeID int) ([]Segment, error)
}
