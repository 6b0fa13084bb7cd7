// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/cache"
	"github.com/pdiddy/paper-radar/internal/config"
	"github.com/pdiddy/paper-radar/internal/filter"
	"github.com/pdiddy/paper-radar/internal/pipeline"
	"github.com/pdiddy/paper-radar/internal/scholar"
	"github.com/pdiddy/paper-radar/internal/search"
	"github.com/pdiddy/paper-radar/internal/secrets"
	"github.com/pdiddy/paper-radar/internal/summarize"
	"github.com/pdiddy/paper-radar/pkg/types"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the full update cycle for every configured category",
	Long: `Update archives each category's previous today list, searches arXiv for
new papers, scores and summarizes them, and overwrites the today lists.
Categories run sequentially; a category that fails stops the run so the
scheduler surfaces the failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		only, _ := cmd.Flags().GetString("category")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "config: %v\n", e)
			}
			return fmt.Errorf("invalid configuration (%d problems)", len(errs))
		}

		cats := selectCategories(cfg.Categories, only)
		if len(cats) == 0 {
			return fmt.Errorf("no category named %q in configuration", only)
		}

		deps, closeCache := buildDeps(cfg)
		defer closeCache()

		counts := make(map[string]int, len(cats))
		for _, cat := range cats {
			n, err := pipeline.Run(cmd.Context(), deps, cat, os.Stderr)
			if err != nil {
				return fmt.Errorf("category %s: %w", cat.Name, err)
			}
			counts[cat.Name] = n
		}

		fmt.Fprintln(os.Stderr, "=== run summary ===")
		for _, cat := range cats {
			fmt.Fprintf(os.Stderr, "%s: %d papers\n", cat.Name, counts[cat.Name])
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().String("category", "", "run only the named category")
	rootCmd.AddCommand(updateCmd)
}

func selectCategories(cats []types.CategoryConfig, only string) []types.CategoryConfig {
	if only == "" {
		return cats
	}
	for _, c := range cats {
		if c.Name == only {
			return []types.CategoryConfig{c}
		}
	}
	return nil
}

// buildDeps wires the shared collaborators from the configuration and the
// loaded secrets. A cache that fails to open degrades to a no-op cache
// rather than aborting the run.
func buildDeps(cfg *types.Config) (pipeline.Deps, func()) {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	hc, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: h-index cache unavailable, every lookup hits the network: %v\n", err)
		hc = cache.Discard()
	}

	lookup := &scholar.Client{
		HTTPClient: client,
		APIKey:     loadedSecrets[secrets.SemanticScholarAPIKey],
		UserAgent:  cfg.HTTP.UserAgent,
		Cache:      hc,
	}

	var backend summarize.Backend
	if key := loadedSecrets[secrets.OpenRouterAPIKey]; key != "" {
		backend = &summarize.OpenRouterBackend{
			Client: &http.Client{Timeout: cfg.Summary.Timeout},
			APIKey: key,
			Model:  cfg.Summary.Model,
		}
	} else {
		fmt.Fprintln(os.Stderr, "warning: no OpenRouter key in .secrets/, using local excerpt summaries")
	}

	deps := pipeline.Deps{
		Source:     &search.ArxivSource{Client: client, UserAgent: cfg.HTTP.UserAgent},
		Scorer:     &filter.Scorer{Lookup: lookup},
		Summarizer: summarize.New(backend, cfg.Summary.Language, os.Stderr),
	}
	return deps, func() { hc.Close() }
}
