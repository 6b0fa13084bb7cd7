// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar looks up author h-indexes via the Semantic Scholar
// Graph API. Lookups are cache-backed and degrade to "unavailable" on any
// failure; they never propagate errors into the scoring pipeline.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/paper-radar/internal/cache"
	"github.com/pdiddy/paper-radar/internal/httputil"
)

// scholarAPIBase is the Semantic Scholar Graph API root. Declared as a var
// so tests can substitute an httptest server.
var scholarAPIBase = "https://api.semanticscholar.org/graph/v1"

// postCallDelay is the fixed pause after each API call, a concession to
// the service's unauthenticated rate limit. Tests set it to zero.
var postCallDelay = 100 * time.Millisecond

// Client resolves author names to h-indexes. The lookup chains two HTTP
// calls: an author search for the name, then the author detail record.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	UserAgent  string
	Cache      *cache.Cache
}

// HIndex returns the h-index for an author display name. The second return
// is false when the value is unavailable: unknown author, network failure,
// non-200 response, or malformed payload. Results, including unknowns, are
// written back to the cache.
func (c *Client) HIndex(ctx context.Context, name string) (int, bool) {
	if h, known, ok := c.Cache.Get(name); ok {
		return h, known
	}

	h, err := c.lookup(ctx, name)
	if err != nil {
		// Cache the unknown so the next run skips the two calls.
		c.Cache.Set(name, 0, false)
		return 0, false
	}

	c.Cache.Set(name, h, true)
	return h, true
}

func (c *Client) lookup(ctx context.Context, name string) (int, error) {
	authorID, err := c.searchAuthor(ctx, name)
	if err != nil {
		return 0, err
	}

	var detail struct {
		HIndex int    `json:"hIndex"`
		Name   string `json:"name"`
	}
	detailURL := fmt.Sprintf("%s/author/%s?fields=hIndex,name", scholarAPIBase, url.PathEscape(authorID))
	if err := c.getJSON(ctx, detailURL, &detail); err != nil {
		return 0, err
	}
	if detail.HIndex < 0 {
		return 0, fmt.Errorf("negative h-index for %s", name)
	}
	return detail.HIndex, nil
}

func (c *Client) searchAuthor(ctx context.Context, name string) (string, error) {
	params := url.Values{
		"query": {name},
		"limit": {"1"},
	}
	searchURL := scholarAPIBase + "/author/search?" + params.Encode()

	var result struct {
		Data []struct {
			AuthorID string `json:"authorId"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return "", err
	}
	if len(result.Data) == 0 || result.Data[0].AuthorID == "" {
		return "", fmt.Errorf("no author match for %q", name)
	}
	return result.Data[0].AuthorID, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if postCallDelay > 0 {
		time.Sleep(postCallDelay)
	}
	if err != nil {
		return fmt.Errorf("Semantic Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Semantic Scholar returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return nil
}
