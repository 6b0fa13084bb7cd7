// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/internal/store"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Pick is one hand-curated recommendation. The file is written by an
// editor, so only title and link are required.
type Pick struct {
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
	DOI   string `yaml:"doi"`
	Desc  string `yaml:"desc"`
}

// Promote replaces a category's today list with the hand-curated picks
// from its recommended file, bypassing search and summarization. It
// returns the number of papers written.
func Promote(cat types.CategoryConfig, now func() time.Time, w io.Writer) (int, error) {
	if cat.Paths.Recommended == "" {
		return 0, fmt.Errorf("category %s has no recommended path configured", cat.Name)
	}
	if now == nil {
		now = time.Now
	}

	raw, err := os.ReadFile(cat.Paths.Recommended)
	if err != nil {
		return 0, fmt.Errorf("reading recommended list: %w", err)
	}
	var picks []Pick
	if err := yaml.Unmarshal(raw, &picks); err != nil {
		return 0, fmt.Errorf("parsing recommended list: %w", err)
	}
	if len(picks) == 0 {
		return 0, fmt.Errorf("recommended list %s is empty", cat.Paths.Recommended)
	}

	stamp := now().In(KST)
	var entries []types.ArchiveEntry
	for _, p := range picks {
		if p.Title == "" {
			fmt.Fprintf(w, "warning: skipping pick with no title\n")
			continue
		}
		entries = append(entries, types.ArchiveEntry{
			Title:       p.Title,
			TitleEN:     p.Title,
			Authors:     "Editor's Pick",
			Date:        stamp.Format("2006-01-02"),
			PaperID:     pickID(p),
			Link:        p.Link,
			Summary:     p.Desc,
			SummaryDate: stamp.Format(summaryDateFmt),
			Tags:        []string{"Editor's Pick", "Recommended"},
			Category:    "Review / Key Paper",
		})
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("recommended list %s has no usable picks", cat.Paths.Recommended)
	}

	if err := store.SaveEntries(cat.Paths.Today, entries); err != nil {
		return 0, fmt.Errorf("saving today list: %w", err)
	}
	fmt.Fprintf(w, "promoted %d picks to %s\n", len(entries), cat.Paths.Today)
	return len(entries), nil
}

// pickID derives a stable identifier from the DOI so a later archive
// merge deduplicates repeated promotions.
func pickID(p Pick) string {
	if p.DOI == "" {
		return "N/A"
	}
	return strings.ReplaceAll(p.DOI, "/", "_")
}
