// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// Default bonus values, matching the configuration defaults.
const (
	defaultJournalScore = 3
	renownedAuthorScore = 3
	institutionScore    = 2
	defaultHIndexScore  = 3
)

// maxAuthorsChecked bounds the renowned-author scan to the lead authors.
const maxAuthorsChecked = 3

// HIndexLookup resolves an author display name to an h-index. The second
// return is false when the value is unavailable; lookups never fail hard.
type HIndexLookup interface {
	HIndex(ctx context.Context, name string) (int, bool)
}

// Scorer computes the additive quality score for candidate papers.
type Scorer struct {
	// Lookup serves the h-index bonus. A nil Lookup disables that bonus.
	Lookup HIndexLookup
}

// Score evaluates the paper against cfg and returns a non-negative score
// plus a human-readable reason trail, one line per satisfied criterion in
// evaluation order. Criteria are strictly additive; the institution bonus
// stacks with the others.
//
// The renowned-author and h-index bonuses are mutually exclusive: both
// reward the same "famous author" signal, and the h-index lookup costs two
// HTTP calls, so it only runs when the name-list check found nothing.
func (s *Scorer) Score(ctx context.Context, p types.Paper, cfg types.FilterConfig) (int, []string) {
	score := 0
	var details []string

	if journal, ok := matchJournal(p.JournalRef, cfg.PrestigiousJournals); ok {
		pts := cfg.JournalPublishedScore
		if pts <= 0 {
			pts = defaultJournalScore
		}
		score += pts
		details = append(details, fmt.Sprintf("journal published: %s (+%d)", journal, pts))
	}

	renownedFound := false
	for i, name := range p.Authors {
		if i >= maxAuthorsChecked {
			break
		}
		if matchRenowned(name, cfg.RenownedAuthors) {
			score += renownedAuthorScore
			details = append(details, fmt.Sprintf("renowned author: %s (+%d)", name, renownedAuthorScore))
			renownedFound = true
			break
		}
	}

	if p.Comment != "" {
		if inst, ok := matchInstitution(p.Comment, cfg.PrestigiousInstitutions); ok {
			score += institutionScore
			details = append(details, fmt.Sprintf("prestigious institution: %s (+%d)", inst, institutionScore))
		}
	}

	if cfg.MinAuthorHIndex > 0 && !renownedFound && len(p.Authors) > 0 && s.Lookup != nil {
		// First author only, to bound external-call volume.
		if h, ok := s.Lookup.HIndex(ctx, p.Authors[0]); ok && h >= cfg.MinAuthorHIndex {
			pts := cfg.HIndexScore
			if pts <= 0 {
				pts = defaultHIndexScore
			}
			score += pts
			details = append(details, fmt.Sprintf("author h-index %d (+%d)", h, pts))
		}
	}

	return score, details
}

// matchJournal tests the journal reference for a case-insensitive substring
// match against the reference list. An empty list short-circuits.
func matchJournal(journalRef string, journals []string) (string, bool) {
	if journalRef == "" || len(journals) == 0 {
		return "", false
	}
	ref := strings.ToLower(journalRef)
	for _, j := range journals {
		if j != "" && strings.Contains(ref, strings.ToLower(j)) {
			return j, true
		}
	}
	return "", false
}

// matchRenowned tests whether any reference author's surname (last
// whitespace-delimited token) appears in the candidate's full name.
func matchRenowned(name string, renowned []string) bool {
	if len(renowned) == 0 {
		return false
	}
	candidate := strings.ToLower(name)
	for _, r := range renowned {
		fields := strings.Fields(r)
		if len(fields) == 0 {
			continue
		}
		surname := strings.ToLower(fields[len(fields)-1])
		if strings.Contains(candidate, surname) {
			return true
		}
	}
	return false
}

// matchInstitution tests the comment field for a case-insensitive substring
// match against the reference list.
func matchInstitution(comment string, institutions []string) (string, bool) {
	if len(institutions) == 0 {
		return "", false
	}
	c := strings.ToLower(comment)
	for _, inst := range institutions {
		if inst != "" && strings.Contains(c, strings.ToLower(inst)) {
			return inst, true
		}
	}
	return "", false
}
