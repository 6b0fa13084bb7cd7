// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout for metadata lookups.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-radar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// RelaxationPolicy controls whether a lowered score threshold carries over
// from one search tier to the next.
type RelaxationPolicy string

const (
	// RelaxReset starts every tier at the configured min_score.
	RelaxReset RelaxationPolicy = "reset"

	// RelaxPersist keeps a threshold lowered in an earlier tier lowered
	// for the remaining tiers and the date-sorted fallback.
	RelaxPersist RelaxationPolicy = "persist"
)

// FilterConfig holds the quality-filter rules for one category. It is
// immutable for the duration of a run.
type FilterConfig struct {
	// Enabled turns score-based filtering on. When false every paper that
	// survives the keyword gates is accepted.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// MinScore is the acceptance threshold.
	MinScore int `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// JournalPublishedScore is awarded when the journal reference matches
	// a prestigious journal (default 3).
	JournalPublishedScore int `json:"journal_published_score" yaml:"journal_published_score" mapstructure:"journal_published_score"`

	// MinAuthorHIndex enables the h-index bonus when > 0.
	MinAuthorHIndex int `json:"min_author_hindex" yaml:"min_author_hindex" mapstructure:"min_author_hindex"`

	// HIndexScore is awarded when the first author's h-index meets
	// MinAuthorHIndex (default 3).
	HIndexScore int `json:"hindex_score" yaml:"hindex_score" mapstructure:"hindex_score"`

	// PrestigiousJournals, RenownedAuthors and PrestigiousInstitutions are
	// the reference lists the scorer matches against.
	PrestigiousJournals     []string `json:"prestigious_journals" yaml:"prestigious_journals" mapstructure:"prestigious_journals"`
	RenownedAuthors         []string `json:"renowned_authors" yaml:"renowned_authors" mapstructure:"renowned_authors"`
	PrestigiousInstitutions []string `json:"prestigious_institutions" yaml:"prestigious_institutions" mapstructure:"prestigious_institutions"`
}

// SearchSettings holds the tiered-search parameters for one category.
type SearchSettings struct {
	// Queries is the ordered list of query tiers, most precise first.
	Queries []string `json:"queries" yaml:"queries" mapstructure:"queries"`

	// MaxFetch caps the number of results fetched per tier (default 100).
	MaxFetch int `json:"max_fetch" yaml:"max_fetch" mapstructure:"max_fetch"`

	// Target is the number of accepted papers to collect (default 3).
	Target int `json:"target" yaml:"target" mapstructure:"target"`

	// DateFallbackTier is the index of the tier re-run in date-sorted mode
	// when every tier ends with zero accepted papers.
	DateFallbackTier int `json:"date_fallback_tier" yaml:"date_fallback_tier" mapstructure:"date_fallback_tier"`

	// Relaxation selects the threshold-relaxation policy (default "reset").
	Relaxation RelaxationPolicy `json:"relaxation" yaml:"relaxation" mapstructure:"relaxation"`

	// RelaxWindow is the number of examined candidates with zero accepts
	// after which the score threshold is lowered by one point, once
	// (default 50). The effective window never exceeds the fetched batch.
	RelaxWindow int `json:"relax_window" yaml:"relax_window" mapstructure:"relax_window"`

	// ExcludeKeywords rejects any paper whose title+abstract contains one.
	ExcludeKeywords []string `json:"exclude_keywords" yaml:"exclude_keywords" mapstructure:"exclude_keywords"`

	// IncludeKeywordsAny, when non-empty, requires at least one match.
	IncludeKeywordsAny []string `json:"include_keywords_any" yaml:"include_keywords_any" mapstructure:"include_keywords_any"`
}

// CategoryPaths holds the data-file locations for one category.
type CategoryPaths struct {
	// Today is the path of the current run's output list.
	Today string `json:"today" yaml:"today" mapstructure:"today"`

	// Archive is the path of the cumulative archive list.
	Archive string `json:"archive" yaml:"archive" mapstructure:"archive"`

	// Recommended is the optional hand-curated list used by the promote
	// command.
	Recommended string `json:"recommended,omitempty" yaml:"recommended,omitempty" mapstructure:"recommended"`
}

// CategoryConfig is the full per-category configuration.
type CategoryConfig struct {
	// Name labels the category in logs and summaries.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	Paths  CategoryPaths  `json:"paths" yaml:"paths" mapstructure:"paths"`
	Search SearchSettings `json:"search" yaml:"search" mapstructure:"search"`
	Filter FilterConfig   `json:"filter" yaml:"filter" mapstructure:"filter"`

	// TagKeywords maps lowercase keywords to the tag emitted when the
	// keyword appears in a paper's title or summary.
	TagKeywords map[string]string `json:"tag_keywords,omitempty" yaml:"tag_keywords,omitempty" mapstructure:"tag_keywords"`
}

// CacheConfig holds settings for the persistent h-index cache.
type CacheConfig struct {
	// Path is the SQLite database location (default ".cache/hindex.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// TTL is the entry lifetime; entries older than this are treated as
	// absent (default 168h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// SummaryConfig holds settings for the summarization collaborator.
type SummaryConfig struct {
	// Model is the language-model identifier passed to the API.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Timeout is the HTTP timeout for language-model calls. These run much
	// longer than metadata lookups (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// Language is the target language for title translation (default "Korean").
	Language string `json:"language" yaml:"language" mapstructure:"language"`
}

// Config is the root run configuration, constructed once at process start
// and passed by reference into every component.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Summary    SummaryConfig    `json:"summary" yaml:"summary" mapstructure:"summary"`
	Categories []CategoryConfig `json:"categories" yaml:"categories" mapstructure:"categories"`
}
