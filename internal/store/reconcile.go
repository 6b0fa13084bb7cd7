// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "github.com/pdiddy/paper-radar/pkg/types"

// Reconcile merges a today list into the archive and returns the new
// archive plus the number of entries inserted. Each new entry is inserted
// at the front, so a batch of [A, B] lands as [B, A, ...old archive]:
// the most recent insert ends up first.
//
// An entry is inserted only when its paper_id is non-empty and not already
// present, either in the prior archive or earlier in the same batch. The
// archive is never mutated in place; reconciling the same today list twice
// yields the same archive as reconciling it once.
func Reconcile(today, archive []types.ArchiveEntry) ([]types.ArchiveEntry, int) {
	if len(today) == 0 {
		return archive, 0
	}

	existing := IDSet(archive)
	merged := make([]types.ArchiveEntry, len(archive))
	copy(merged, archive)

	inserted := 0
	for _, e := range today {
		if e.PaperID == "" || existing[e.PaperID] {
			continue
		}
		merged = append([]types.ArchiveEntry{e}, merged...)
		existing[e.PaperID] = true
		inserted++
	}
	return merged, inserted
}
