package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/novelpiad/internal/providers"
)

// DefaultImageName is used for images that carry neither data-filename nor id.
const DefaultImageName = "cover.jpg"

const nbsp = "&nbsp;"

// ImageSink receives every image as soon as its marker is written.
type ImageSink interface {
	SaveImage(ctx context.Context, ep *providers.Episode, filename, src string) error
}

func NormalizeText(s string) string {
	return strings.ReplaceAll(s, nbsp, "\n")
}

func ImageFilename(seg providers.Segment) string {
	return seg.FilenameHint.OrElse(DefaultImageName)
}

// Render walks the segments in order. Image downloads happen inline, so a
// failing image aborts the episode before anything is returned.
func Render(ctx context.Context, ep *providers.Episode, sink ImageSink) ([]byte, error) {
	var buf bytes.Buffer

	for i, seg := range ep.Segments {
		switch seg.Kind {
		case providers.SegmentText:
			buf.WriteString(NormalizeText(seg.Text))

		case providers.SegmentImage:
			name := ImageFilename(seg)
			buf.WriteString("[" + name + "]")

			if err := sink.SaveImage(ctx, ep, name, seg.Src); err != nil {
				return nil, fmt.Errorf("image %q (segment %d): %w", name, i, err)
			}

		default:
			return nil, fmt.Errorf("segment %d: unknown kind %d", i, seg.Kind)
		}
	}

	return buf.Bytes(), nil
}
