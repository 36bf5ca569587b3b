package novelpia

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/novelpiad/internal/providers"
	"github.com/samber/lo"
)

const bookmarkPrefix = "bookmark_"

func pageLiteralPattern(workID int) *regexp.Regexp {
	return regexp.MustCompile(
		`^localStorage\['novel_page_` + strconv.Itoa(workID) + `'\] = '(.+?)'; episode_list\(\);`,
	)
}

// ParseTotalPages reads the last page index out of the onclick handler of the
// final pagination control on a listing page.
func ParseTotalPages(workID int, markup string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return 0, err
	}

	last := doc.Find("div.page-link").Last()
	if last.Length() == 0 {
		return 0, fmt.Errorf("%w: no pagination control", providers.ErrUnexpectedMarkup)
	}

	onclick, ok := last.Attr("onclick")
	if !ok {
		return 0, fmt.Errorf("%w: pagination control has no onclick", providers.ErrUnexpectedMarkup)
	}

	m := pageLiteralPattern(workID).FindStringSubmatch(onclick)
	if m == nil {
		return 0, fmt.Errorf("%w: pagination literal not found in %q", providers.ErrUnexpectedMarkup, onclick)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: pagination literal %q is not a number", providers.ErrUnexpectedMarkup, m[1])
	}

	return n, nil
}

// ParseEpisodeIDs returns one id per bookmark marker, in document order.
func ParseEpisodeIDs(markup string) ([]int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	ids := []int{}
	var parseErr error

	doc.Find("i.icon.ion-bookmark").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		raw, _ := el.Attr("id")
		n, err := strconv.Atoi(strings.TrimPrefix(raw, bookmarkPrefix))
		if err != nil || n < 0 {
			parseErr = fmt.Errorf("%w: bookmark id %q", providers.ErrUnexpectedMarkup, raw)
			return false
		}

		ids = append(ids, n)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return ids, nil
}

// TotalPages fetches page 0 and returns the last page index with the page's
// markup so it does not need to be requested twice.
func (c *Client) TotalPages(ctx context.Context, workID int) (int, string, error) {
	page, err := c.FetchPage(ctx, workID, 0)
	if err != nil {
		return 0, "", err
	}

	total, err := ParseTotalPages(workID, page)
	if err != nil {
		return 0, "", fmt.Errorf("novel %d: %w", workID, err)
	}

	return total, page, nil
}

// EpisodeIDs walks pages 0..total inclusive. Page indices are zero-based and
// the pagination literal is the index of the last page, so page 0 and page 1
// never coincide. Ids seen twice are dropped after their first occurrence.
func (c *Client) EpisodeIDs(ctx context.Context, workID int) ([]int, error) {
	total, first, err := c.TotalPages(ctx, workID)
	if err != nil {
		return nil, err
	}

	c.log.Debugf("Novel %d: %d listing pages after page 0\n", workID, total)

	pages := []string{first}
	for i := 1; i <= total; i++ {
		page, err := c.FetchPage(ctx, workID, i)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	var ids []int
	for i, page := range pages {
		found, err := ParseEpisodeIDs(page)
		if err != nil {
			return nil, fmt.Errorf("episode list page %d: %w", i, err)
		}
		ids = append(ids, found...)
	}

	uniq := lo.Uniq(ids)
	if len(uniq) != len(ids) {
		c.log.Debugf("Dropped %d duplicate episode ids\n", len(ids)-len(uniq))
	}

	return uniq, nil
}
