package novelpia

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/novelpiad/internal/providers"
	"github.com/samber/mo"
)

// siteTitleDecoration is prepended by the site to every <title>.
const siteTitleDecoration = "노벨피아 - 웹소설로 꿈꾸는 세상! - "

type Meta struct {
	WorkTitle string
	Title     string
	Number    string
}

// ParseEpisodeMeta scrapes work title, episode title and episode number from
// a viewer page.
func ParseEpisodeMeta(markup string) (Meta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Meta{}, err
	}

	title := doc.Find("div.menu-top-title").First()
	if title.Length() == 0 {
		return Meta{}, fmt.Errorf("%w: no episode title", providers.ErrUnexpectedMarkup)
	}

	tag := doc.Find("span.menu-top-tag").First()
	if tag.Length() == 0 {
		return Meta{}, fmt.Errorf("%w: no episode number", providers.ErrUnexpectedMarkup)
	}

	head := doc.Find("title").First()
	if head.Length() == 0 {
		return Meta{}, fmt.Errorf("%w: no <title>", providers.ErrUnexpectedMarkup)
	}

	return Meta{
		WorkTitle: strings.TrimSpace(strings.ReplaceAll(head.Text(), siteTitleDecoration, "")),
		Title:     strings.TrimSpace(title.Text()),
		Number:    strings.TrimSpace(tag.Text()),
	}, nil
}

type viewerData struct {
	S *[]struct {
		Text string `json:"text"`
	} `json:"s"`
}

// DecodeSegments turns a viewer_data payload into ordered segments.
func DecodeSegments(payload []byte) ([]providers.Segment, error) {
	var data viewerData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode viewer data: %w", err)
	}
	if data.S == nil {
		return nil, fmt.Errorf("%w: viewer data has no content array", providers.ErrUnexpectedMarkup)
	}

	out := make([]providers.Segment, 0, len(*data.S))
	for i, item := range *data.S {
		seg, err := ParseSegment(item.Text)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, seg)
	}

	return out, nil
}

// ParseSegment classifies one content run. Runs carrying an <img> element
// become image references; everything else is text.
func ParseSegment(text string) (providers.Segment, error) {
	if !strings.Contains(strings.ToLower(text), "<img") {
		return providers.TextSegment(text), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return providers.Segment{}, err
	}

	img := doc.Find("img").First()
	if img.Length() == 0 {
		return providers.TextSegment(text), nil
	}

	src, ok := img.Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return providers.Segment{}, fmt.Errorf("%w: image without src", providers.ErrUnexpectedMarkup)
	}

	return providers.ImageSegment(strings.TrimSpace(src), filenameHint(img)), nil
}

func filenameHint(img *goquery.Selection) mo.Option[string] {
	for _, attr := range []string{"data-filename", "id"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			return mo.Some(v)
		}
	}

	return mo.None[string]()
}

func (c *Client) EpisodeMeta(ctx context.Context, episodeID int) (*providers.Episode, error) {
	page, err := c.fetchViewer(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	meta, err := ParseEpisodeMeta(page)
	if err != nil {
		return nil, fmt.Errorf("episode %d: %w", episodeID, err)
	}

	return &providers.Episode{
		ID:        episodeID,
		Number:    meta.Number,
		Title:     meta.Title,
		WorkTitle: meta.WorkTitle,
	}, nil
}

func (c *Client) EpisodeSegments(ctx context.Context, episodeID int) ([]providers.Segment, error) {
	payload, err := c.fetchViewerData(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	segs, err := DecodeSegments(payload)
	if err != nil {
		return nil, fmt.Errorf("episode %d: %w", episodeID, err)
	}

	return segs, nil
}

// Episode fetches metadata then content and combines them.
func (c *Client) Episode(ctx context.Context, episodeID int) (*providers.Episode, error) {
	ep, err := c.EpisodeMeta(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	ep.Segments, err = c.EpisodeSegments(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	return ep, nil
}
