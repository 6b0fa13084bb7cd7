// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds new papers through tiered queries against the
// arXiv export API. Tiers run from most topically precise to broadest;
// the loop stops as soon as the target count is reached, preferring
// precision over recall. When topical scoring is too strict to fill the
// target from relevance-ranked results, a designated tier is re-run
// sorted by submission date as a last resort.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/paper-radar/internal/filter"
	"github.com/pdiddy/paper-radar/pkg/types"
)

const (
	defaultTarget   = 3
	defaultMaxFetch = 100

	// defaultRelaxWindow is the number of examined candidates after which
	// a run with zero accepts lowers the threshold by one point, once.
	// Overridable per category via search.relax_window.
	defaultRelaxWindow = 50
)

// Finder runs the tiered search for one category.
type Finder struct {
	Source Source
	Scorer *filter.Scorer

	// W receives the tier-by-tier decision trail.
	W io.Writer
}

// tierState carries the relaxation state threaded through tier runs.
type tierState struct {
	minScore  int // configured threshold
	effective int // current threshold, possibly relaxed
	scanned   int // scored candidates since last reset
	relaxed   bool
}

func (st *tierState) reset() {
	st.effective = st.minScore
	st.scanned = 0
	st.relaxed = false
}

// FindNewPapers returns up to settings.Target papers that are not in
// existing and pass the keyword gates and the quality score. existing is
// not mutated. An empty result means nothing new qualified this run, not
// an error.
func (f *Finder) FindNewPapers(ctx context.Context, existing map[string]bool, settings types.SearchSettings, filterCfg types.FilterConfig) []types.Paper {
	target := settings.Target
	if target <= 0 {
		target = defaultTarget
	}
	maxFetch := settings.MaxFetch
	if maxFetch <= 0 {
		maxFetch = defaultMaxFetch
	}

	// Accepted IDs join the exclusion set so a broader tier cannot
	// re-accept a paper a precise tier already took.
	seen := make(map[string]bool, len(existing))
	for id := range existing {
		seen[id] = true
	}

	st := &tierState{minScore: filterCfg.MinScore}
	st.reset()

	var accepted []types.Paper
	for i, query := range settings.Queries {
		if settings.Relaxation != types.RelaxPersist {
			st.reset()
		}
		fmt.Fprintf(f.W, "tier %d/%d: query=%q sort=relevance\n", i+1, len(settings.Queries), query)

		accepted = f.runTier(ctx, query, SortRelevance, maxFetch, target, seen, settings, filterCfg, st, accepted)
		if len(accepted) >= target {
			fmt.Fprintf(f.W, "target reached at tier %d (%d papers)\n", i+1, len(accepted))
			break
		}
	}

	// Last resort: when the relevance tiers end below target, the
	// designated tier is re-run newest-first to top up. seen already holds
	// every accepted id, so nothing can be taken twice.
	if len(accepted) < target && len(settings.Queries) > 0 {
		idx := settings.DateFallbackTier
		if idx < 0 || idx >= len(settings.Queries) {
			idx = 0
		}
		query := settings.Queries[idx]
		if settings.Relaxation != types.RelaxPersist {
			st.reset()
		}
		fmt.Fprintf(f.W, "fallback: re-running tier %d query=%q sort=submitted-date\n", idx+1, query)
		accepted = f.runTier(ctx, query, SortSubmittedDate, maxFetch, target, seen, settings, filterCfg, st, accepted)
	}

	if len(accepted) > target {
		accepted = accepted[:target]
	}
	return accepted
}

// runTier fetches one tier's results and appends qualifying papers to
// accepted. A fetch error with partial results proceeds on the partial
// batch; with no results the tier yields nothing and the caller moves on.
func (f *Finder) runTier(ctx context.Context, query string, sort SortMode, maxFetch, target int, seen map[string]bool, settings types.SearchSettings, filterCfg types.FilterConfig, st *tierState, accepted []types.Paper) []types.Paper {
	fetched, err := f.Source.Fetch(ctx, query, sort, maxFetch)
	if err != nil {
		if len(fetched) == 0 {
			fmt.Fprintf(f.W, "warning: tier fetch failed, no candidates: %v\n", err)
			return accepted
		}
		fmt.Fprintf(f.W, "warning: tier fetch incomplete, using %d candidates: %v\n", len(fetched), err)
	}
	fmt.Fprintf(f.W, "fetched %d candidates\n", len(fetched))

	accepted = f.evaluate(ctx, fetched, target, seen, settings, filterCfg, st, accepted, true)

	// Zero accepts even after relaxation: one rescue pass over the same
	// fetched set with the score gate disabled, so the run makes forward
	// progress instead of publishing nothing.
	if filterCfg.Enabled && len(accepted) == 0 && len(fetched) > 0 {
		fmt.Fprintf(f.W, "no candidate met the threshold, rescanning tier without score gate\n")
		accepted = f.evaluate(ctx, fetched, target, seen, settings, filterCfg, st, accepted, false)
	}
	return accepted
}

// evaluate scans fetched candidates in API order, first-target-accepted
// wins. With gate false the score is still computed and logged but does
// not reject.
func (f *Finder) evaluate(ctx context.Context, fetched []types.Paper, target int, seen map[string]bool, settings types.SearchSettings, filterCfg types.FilterConfig, st *tierState, accepted []types.Paper, gate bool) []types.Paper {
	relaxAfter := settings.RelaxWindow
	if relaxAfter <= 0 {
		relaxAfter = defaultRelaxWindow
	}
	if len(fetched) < relaxAfter {
		relaxAfter = len(fetched)
	}

	for _, p := range fetched {
		if len(accepted) >= target {
			break
		}

		if gate && filterCfg.Enabled {
			// Every examined candidate counts toward the relaxation
			// window, including ones skipped by dedup or keyword gates,
			// so the window base stays min(relax_window, fetched).
			st.scanned++
		}

		switch {
		case p.ID == "" || seen[p.ID]:
		case filter.ShouldExclude(p, settings.ExcludeKeywords):
		case !filter.MatchesIncludeAny(p, settings.IncludeKeywordsAny):
		case !filterCfg.Enabled:
			accepted = f.accept(accepted, p, seen, 0, nil, target)
		default:
			score, details := f.Scorer.Score(ctx, p, filterCfg)
			if !gate || score >= st.effective {
				accepted = f.accept(accepted, p, seen, score, details, target)
			} else {
				fmt.Fprintf(f.W, "[reject] %s score=%d min=%d\n", p.ID, score, st.effective)
			}
		}

		if gate && filterCfg.Enabled && len(accepted) == 0 &&
			!st.relaxed && st.minScore > 0 && st.scanned >= relaxAfter {
			st.effective = st.minScore - 1
			st.relaxed = true
			fmt.Fprintf(f.W, "no accepts after %d candidates, relaxing threshold to %d\n", st.scanned, st.effective)
		}
	}
	return accepted
}

func (f *Finder) accept(accepted []types.Paper, p types.Paper, seen map[string]bool, score int, details []string, target int) []types.Paper {
	accepted = append(accepted, p)
	seen[p.ID] = true
	fmt.Fprintf(f.W, "[accept] %s score=%d (%d/%d) %s\n", p.ID, score, len(accepted), target, truncateTitle(p.Title))
	for _, d := range details {
		fmt.Fprintf(f.W, "         %s\n", d)
	}
	return accepted
}

// truncateTitle shortens long titles for the log on rune boundaries, so
// multibyte characters never get split into invalid UTF-8.
func truncateTitle(title string) string {
	if r := []rune(title); len(r) > 70 {
		return string(r[:67]) + "..."
	}
	return title
}
