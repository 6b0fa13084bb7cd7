// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-radar pipeline:
// the Paper record fetched from the search API, the ArchiveEntry persisted
// for the static site, and the per-category run configuration.
package types

import "time"

// Paper holds the metadata of one candidate paper as returned by the
// search API. Papers are immutable once fetched; they live only for the
// duration of one pipeline run.
type Paper struct {
	// ID is the stable short identifier (e.g. "2301.07041"), version-stripped.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication or preprint date.
	Published time.Time `json:"published" yaml:"published"`

	// Link is the canonical URL of the paper.
	Link string `json:"link" yaml:"link"`

	// JournalRef is the free-text journal reference, if any.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// Comment is the free-text author comment, if any. Affiliations often
	// show up here, which is what the institution bonus keys on.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// ArchiveEntry is one persisted record of the today list or the archive.
// The YAML keys match the data files the static site already consumes.
// Entries are created once, never mutated, never deleted.
type ArchiveEntry struct {
	// Title is the localized (translated) title.
	Title string `yaml:"title"`

	// TitleEN is the cleaned English title.
	TitleEN string `yaml:"title_en"`

	// Authors is the comma-joined author list.
	Authors string `yaml:"authors"`

	// Date is the publication date, formatted 2006-01-02.
	Date string `yaml:"date"`

	// PaperID is the identity of the entry, unique within the archive.
	PaperID string `yaml:"paper_id"`

	// Link is the canonical URL of the paper.
	Link string `yaml:"link"`

	// Summary is the sanitized summary HTML.
	Summary string `yaml:"summary"`

	// SummaryDate records when the summary was generated.
	SummaryDate string `yaml:"summary_date"`

	// Tags are topical labels extracted from title and summary.
	Tags []string `yaml:"tags,omitempty"`

	// Category is an optional label set by the promote command.
	Category string `yaml:"category,omitempty"`
}
