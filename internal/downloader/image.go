package downloader

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// ImageURL turns a scraped src into a fetchable URL. The site emits
// scheme-relative sources ("//images.novelpia.com/..."); those and bare hosts
// become https, absolute URLs pass through.
func ImageURL(src string) string {
	src = strings.TrimSpace(src)

	switch {
	case strings.HasPrefix(src, "https://"), strings.HasPrefix(src, "http://"):
		return src
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	default:
		return "https://" + src
	}
}

func (d *Downloader) fetchImage(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	if d.opts.Referer != "" {
		req.Header.Set("Referer", d.opts.Referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.log.Debugf("Warning: failed to close image body for %s: %v\n", u, cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", u, resp.StatusCode)
	}

	// An HTML body here is a login or error page, not an image.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); strings.HasPrefix(mt, "text/") {
			return nil, fmt.Errorf("GET %s: unexpected MIME: %s", u, ct)
		}
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}

	var last int64
	if _, err := copyWithProgress(&buf, resp.Body, func(done int64) {
		d.stats.TotalBytes.Add(done - last)
		last = done
	}); err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}

	return buf.Bytes(), nil
}
