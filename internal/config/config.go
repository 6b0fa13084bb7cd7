// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates the run configuration. Validation
// runs before any network I/O and reports every violation at once rather
// than failing on the first.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultUserAgent  = "paper-radar/0.1"
	DefaultModel      = "google/gemini-2.5-flash"
	DefaultLanguage   = "Korean"
	DefaultCachePath  = ".cache/hindex.db"
	defaultMaxFetch   = 100
	defaultTarget     = 3
	defaultRelaxWin   = 50
	defaultHTTPTime   = 10 * time.Second
	defaultModelTime  = 60 * time.Second
	defaultCacheTTL   = 7 * 24 * time.Hour
)

// Load reads the configuration from file, or from the default search
// paths when file is empty, applies defaults, and unmarshals into a typed
// Config. Environment variables prefixed PAPER_RADAR_ override file keys.
func Load(file string) (*types.Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("paper-radar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paper-radar"))
		}
	}

	v.SetEnvPrefix("PAPER_RADAR")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	normalize(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", defaultHTTPTime)
	v.SetDefault("http.user_agent", DefaultUserAgent)
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("summary.model", DefaultModel)
	v.SetDefault("summary.timeout", defaultModelTime)
	v.SetDefault("summary.language", DefaultLanguage)
}

// normalize fills per-category defaults that viper cannot apply inside
// list elements.
func normalize(cfg *types.Config) {
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		if c.Search.MaxFetch == 0 {
			c.Search.MaxFetch = defaultMaxFetch
		}
		if c.Search.Target == 0 {
			c.Search.Target = defaultTarget
		}
		if c.Search.Relaxation == "" {
			c.Search.Relaxation = types.RelaxReset
		}
		if c.Search.RelaxWindow == 0 {
			c.Search.RelaxWindow = defaultRelaxWin
		}
	}
}

// Validate checks the configuration and returns the full list of
// violations. An empty list means the run may proceed.
func Validate(cfg *types.Config) []error {
	var errs []error

	if len(cfg.Categories) == 0 {
		errs = append(errs, fmt.Errorf("no categories configured"))
	}

	for i, c := range cfg.Categories {
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("categories[%d]", i)
			errs = append(errs, fmt.Errorf("%s: name is required", label))
		}

		if c.Paths.Today == "" {
			errs = append(errs, fmt.Errorf("%s: paths.today is required", label))
		}
		if c.Paths.Archive == "" {
			errs = append(errs, fmt.Errorf("%s: paths.archive is required", label))
		}

		if len(c.Search.Queries) == 0 {
			errs = append(errs, fmt.Errorf("%s: search.queries must list at least one query tier", label))
		}
		for j, q := range c.Search.Queries {
			if q == "" {
				errs = append(errs, fmt.Errorf("%s: search.queries[%d] is empty", label, j))
			}
		}
		if c.Search.MaxFetch < 1 {
			errs = append(errs, fmt.Errorf("%s: search.max_fetch must be a positive integer", label))
		}
		if c.Search.Target < 1 {
			errs = append(errs, fmt.Errorf("%s: search.target must be a positive integer", label))
		}
		if len(c.Search.Queries) > 0 &&
			(c.Search.DateFallbackTier < 0 || c.Search.DateFallbackTier >= len(c.Search.Queries)) {
			errs = append(errs, fmt.Errorf("%s: search.date_fallback_tier %d is out of range", label, c.Search.DateFallbackTier))
		}
		if c.Search.RelaxWindow < 1 {
			errs = append(errs, fmt.Errorf("%s: search.relax_window must be a positive integer", label))
		}
		switch c.Search.Relaxation {
		case types.RelaxReset, types.RelaxPersist:
		default:
			errs = append(errs, fmt.Errorf("%s: search.relaxation must be %q or %q", label, types.RelaxReset, types.RelaxPersist))
		}

		if c.Filter.MinScore < 0 {
			errs = append(errs, fmt.Errorf("%s: filter.min_score must be non-negative", label))
		}
		if c.Filter.MinAuthorHIndex < 0 {
			errs = append(errs, fmt.Errorf("%s: filter.min_author_hindex must be non-negative", label))
		}
	}

	return errs
}
