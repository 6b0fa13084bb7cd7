// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store reads and writes the YAML data files the static site
// consumes: per-category today lists, the cumulative archive, and the
// hand-curated recommended list. Files are flat lists of records keyed by
// paper_id; saves always overwrite the whole file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// LoadEntries reads a YAML entry list. A missing file yields an empty
// list, not an error; a corrupt file is an error the caller may choose to
// treat as empty.
func LoadEntries(path string) ([]types.ArchiveEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []types.ArchiveEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// SaveEntries writes the full entry list to path, creating parent
// directories as needed. An empty list writes an empty document, which is
// how a run with nothing to publish clears the today file.
func SaveEntries(path string, entries []types.ArchiveEntry) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// IDSet returns the set of non-empty paper IDs in entries.
func IDSet(entries []types.ArchiveEntry) map[string]bool {
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.PaperID != "" {
			ids[e.PaperID] = true
		}
	}
	return ids
}
