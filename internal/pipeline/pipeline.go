// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one category end to end: merge yesterday's
// today list into the archive, find new papers, summarize them, and
// overwrite the today list. Categories run sequentially in one process;
// the scheduler is expected to prevent overlapping runs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/paper-radar/internal/filter"
	"github.com/pdiddy/paper-radar/internal/search"
	"github.com/pdiddy/paper-radar/internal/store"
	"github.com/pdiddy/paper-radar/internal/summarize"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// KST is the site's display timezone.
var KST = time.FixedZone("KST", 9*60*60)

const summaryDateFmt = "2006-01-02 15:04 KST"

// Deps bundles the collaborators a category run needs. Now is injectable
// for tests.
type Deps struct {
	Source     search.Source
	Scorer     *filter.Scorer
	Summarizer *summarize.Summarizer
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Run processes one category and returns the number of papers written to
// its today list. Per-paper failures are logged and skipped; the today
// file is only written after all processing for the category completes,
// and it is written even when empty so a dry run clears stale content.
func Run(ctx context.Context, deps Deps, cat types.CategoryConfig, w io.Writer) (int, error) {
	fmt.Fprintf(w, "=== [%s] update start ===\n", cat.Name)
	if cat.Filter.Enabled {
		fmt.Fprintf(w, "quality filter on: min_score=%d journals=%d authors=%d institutions=%d\n",
			cat.Filter.MinScore,
			len(cat.Filter.PrestigiousJournals),
			len(cat.Filter.RenownedAuthors),
			len(cat.Filter.PrestigiousInstitutions))
	}

	today, err := store.LoadEntries(cat.Paths.Today)
	if err != nil {
		// A broken today file only loses yesterday's archive merge; the
		// run can still proceed.
		fmt.Fprintf(w, "warning: could not load today list, skipping archive merge: %v\n", err)
		today = nil
	}

	archive, err := store.LoadEntries(cat.Paths.Archive)
	if err != nil {
		// A broken archive is fatal for the category: proceeding would
		// rebuild it from scratch and lose history.
		return 0, fmt.Errorf("loading archive: %w", err)
	}

	archive, inserted := store.Reconcile(today, archive)
	if inserted > 0 {
		if err := store.SaveEntries(cat.Paths.Archive, archive); err != nil {
			return 0, fmt.Errorf("saving archive: %w", err)
		}
		fmt.Fprintf(w, "archived %d new papers\n", inserted)
	} else {
		fmt.Fprintf(w, "no new papers to archive\n")
	}

	finder := &search.Finder{Source: deps.Source, Scorer: deps.Scorer, W: w}
	papers := finder.FindNewPapers(ctx, store.IDSet(archive), cat.Search, cat.Filter)

	var entries []types.ArchiveEntry
	for _, p := range papers {
		entry, err := deps.buildEntry(ctx, p, cat)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping paper %s: %v\n", p.ID, err)
			continue
		}
		entries = append(entries, entry)
		fmt.Fprintf(w, "processed: %s\n", truncate(entry.TitleEN, 60))
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "no new %s papers this run, clearing today list\n", strings.ToLower(cat.Name))
	}
	if err := store.SaveEntries(cat.Paths.Today, entries); err != nil {
		return 0, fmt.Errorf("saving today list: %w", err)
	}
	fmt.Fprintf(w, "updated %s with %d papers\n", cat.Paths.Today, len(entries))
	return len(entries), nil
}

func (d Deps) buildEntry(ctx context.Context, p types.Paper, cat types.CategoryConfig) (types.ArchiveEntry, error) {
	if p.ID == "" {
		return types.ArchiveEntry{}, fmt.Errorf("paper has no identifier")
	}

	cleaned := summarize.CleanTitle(p.Title)
	summary := d.Summarizer.Summarize(ctx, p.Abstract)
	title := d.Summarizer.TranslateTitle(ctx, cleaned)

	date := p.Published
	if date.IsZero() {
		date = d.now()
	}

	return types.ArchiveEntry{
		Title:       title,
		TitleEN:     cleaned,
		Authors:     strings.Join(p.Authors, ", "),
		Date:        date.Format("2006-01-02"),
		PaperID:     p.ID,
		Link:        p.Link,
		Summary:     summary,
		SummaryDate: d.now().In(KST).Format(summaryDateFmt),
		Tags:        summarize.Tags(cleaned, summary, cat.TagKeywords),
	}, nil
}

// truncate shortens log lines on rune boundaries; translated titles are
// routinely multibyte.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
