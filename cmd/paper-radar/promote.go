// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/config"
	"github.com/pdiddy/paper-radar/internal/pipeline"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Replace a category's today list with its recommended picks",
	Long: `Promote reads the category's hand-curated recommended file and overwrites
its today list with those picks, bypassing search and summarization. Useful
when an editor wants specific papers on the site for the next cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		name, _ := cmd.Flags().GetString("category")

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

		cats := selectCategories(cfg.Categories, name)
		if len(cats) != 1 {
			return fmt.Errorf("no category named %q in configuration", name)
		}

		n, err := pipeline.Promote(cats[0], nil, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s: %d picks promoted\n", cats[0].Name, n)
		return nil
	},
}

func init() {
	promoteCmd.Flags().String("category", "", "category to promote (required)")
	promoteCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(promoteCmd)
}
