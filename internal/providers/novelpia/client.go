package novelpia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/brogergvhs/novelpiad/internal/providers"
	"github.com/brogergvhs/novelpiad/internal/ui"
)

const DefaultBaseURL = "https://novelpia.com"

const (
	formContentType = "application/x-www-form-urlencoded; charset=UTF-8"
	jsonAccept      = "application/json, text/javascript, */*; q=0.01"
)

type Client struct {
	client *http.Client
	base   string
	log    *ui.Logger
}

var _ providers.Source = (*Client)(nil)

func New(c *http.Client, baseURL string, log *ui.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = ui.NewLogger(false)
	}

	return &Client{
		client: c,
		base:   strings.TrimRight(baseURL, "/"),
		log:    log,
	}
}

func (c *Client) listURL() string {
	return c.base + "/proc/episode_list"
}

func (c *Client) viewerURL(episodeID int) string {
	return c.base + "/viewer/" + strconv.Itoa(episodeID)
}

func (c *Client) viewerDataURL(episodeID int) string {
	return c.base + "/proc/viewer_data/" + strconv.Itoa(episodeID)
}

// FetchPage returns the raw markup of one episode index page.
func (c *Client) FetchPage(ctx context.Context, workID, page int) (string, error) {
	form := url.Values{}
	form.Set("novel_no", strconv.Itoa(workID))
	form.Set("page", strconv.Itoa(page))

	body, err := c.do(ctx, http.MethodPost, c.listURL(), strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": formContentType,
	})
	if err != nil {
		return "", fmt.Errorf("episode list page %d: %w", page, err)
	}

	return string(body), nil
}

func (c *Client) fetchViewer(ctx context.Context, episodeID int) (string, error) {
	body, err := c.do(ctx, http.MethodGet, c.viewerURL(episodeID), nil, nil)
	if err != nil {
		return "", fmt.Errorf("viewer %d: %w", episodeID, err)
	}

	return string(body), nil
}

func (c *Client) fetchViewerData(ctx context.Context, episodeID int) ([]byte, error) {
	body, err := c.do(ctx, http.MethodPost, c.viewerDataURL(episodeID), http.NoBody, map[string]string{
		"Accept": jsonAccept,
	})
	if err != nil {
		return nil, fmt.Errorf("viewer data %d: %w", episodeID, err)
	}

	return body, nil
}

func (c *Client) do(
	ctx context.Context,
	method, target string,
	body io.Reader,
	headers map[string]string,
) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Debugf("Warning: failed to close response body for %s: %v\n", target, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
