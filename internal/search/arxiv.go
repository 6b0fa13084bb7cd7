// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// arxivAPIBase is the arXiv export endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// SortMode selects the result ordering of a fetch.
type SortMode string

const (
	// SortRelevance returns results ranked by topical relevance.
	SortRelevance SortMode = "relevance"

	// SortSubmittedDate returns the newest submissions first. Used by the
	// last-resort fallback pass.
	SortSubmittedDate SortMode = "submittedDate"
)

// Source fetches candidate papers for a query. The tiered orchestrator
// depends on this interface so tests can supply canned results.
type Source interface {
	Fetch(ctx context.Context, query string, sort SortMode, max int) ([]types.Paper, error)
}

// ArxivSource queries the arXiv export API.
type ArxivSource struct {
	Client    *http.Client
	UserAgent string
}

// Fetch retrieves up to max results for query. When the Atom stream breaks
// mid-feed, the entries parsed so far are returned together with the error
// so the caller can proceed on partial results.
func (s *ArxivSource) Fetch(ctx context.Context, query string, sort SortMode, max int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if max <= 0 {
		max = 100
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=%s&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), max, sort)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	return decodeFeed(resp.Body, max)
}

// decodeFeed parses Atom entries one element at a time so a truncated or
// corrupt tail still yields the papers decoded before the break.
func decodeFeed(r io.Reader, max int) ([]types.Paper, error) {
	dec := xml.NewDecoder(r)
	var papers []types.Paper

	for len(papers) < max {
		tok, err := dec.Token()
		if err == io.EOF {
			return papers, nil
		}
		if err != nil {
			return papers, fmt.Errorf("parsing arXiv feed: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entry" {
			continue
		}

		var entry arxivEntry
		if err := dec.DecodeElement(&entry, &start); err != nil {
			return papers, fmt.Errorf("parsing arXiv entry: %w", err)
		}

		p, ok := entry.toPaper()
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arXiv Atom feed XML structures. journal_ref and comment live in the
// arxiv extension namespace; matching by local name covers both.
type arxivEntry struct {
	ID         string        `xml:"id"`
	Title      string        `xml:"title"`
	Summary    string        `xml:"summary"`
	Published  string        `xml:"published"`
	Authors    []arxivAuthor `xml:"author"`
	JournalRef string        `xml:"journal_ref"`
	Comment    string        `xml:"comment"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

func (e arxivEntry) toPaper() (types.Paper, bool) {
	id := extractArxivID(e.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:         id,
		Title:      collapseWhitespace(e.Title),
		Abstract:   strings.TrimSpace(e.Summary),
		Link:       e.ID,
		JournalRef: strings.TrimSpace(e.JournalRef),
		Comment:    strings.TrimSpace(e.Comment),
	}
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		p.Published = t
	}
	return p, true
}

// extractArxivID pulls the short ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v2" yields "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace squashes the newline-wrapped titles the feed produces
// into single-space form.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
