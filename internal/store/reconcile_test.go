// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func TestReconcileEmptyTodayIsNoop(t *testing.T) {
	archive := []types.ArchiveEntry{entry("A1")}
	got, n := Reconcile(nil, archive)
	if n != 0 {
		t.Errorf("inserted = %d, want 0", n)
	}
	if !reflect.DeepEqual(got, archive) {
		t.Errorf("archive changed on empty today list")
	}
}

func TestReconcileScenario(t *testing.T) {
	// archive = [A1], today = [A1, B2]: A1 is a duplicate, B2 is inserted
	// at the front.
	archive := []types.ArchiveEntry{entry("A1")}
	today := []types.ArchiveEntry{entry("A1"), entry("B2")}

	got, n := Reconcile(today, archive)
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}
	if len(got) != 2 || got[0].PaperID != "B2" || got[1].PaperID != "A1" {
		t.Errorf("order = %v, want [B2 A1]", idsOf(got))
	}
}

func TestReconcileWithinBatchOrderReversed(t *testing.T) {
	today := []types.ArchiveEntry{entry("A1"), entry("B2")}
	got, n := Reconcile(today, nil)
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}
	// Each insert lands at position 0, so batch order reverses.
	if got[0].PaperID != "B2" || got[1].PaperID != "A1" {
		t.Errorf("order = %v, want [B2 A1]", idsOf(got))
	}
}

func TestReconcileIdempotent(t *testing.T) {
	archive := []types.ArchiveEntry{entry("A1")}
	today := []types.ArchiveEntry{entry("B2"), entry("C3")}

	once, n1 := Reconcile(today, archive)
	twice, n2 := Reconcile(today, once)

	if n1 != 2 || n2 != 0 {
		t.Errorf("inserted = %d then %d, want 2 then 0", n1, n2)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed the archive")
	}
}

func TestReconcileSkipsEmptyAndDuplicateWithinBatch(t *testing.T) {
	today := []types.ArchiveEntry{
		{Title: "no id"},
		entry("A1"),
		entry("A1"),
	}
	got, n := Reconcile(today, nil)
	if n != 1 {
		t.Errorf("inserted = %d, want 1 (empty id and within-batch duplicate skipped)", n)
	}
	if len(got) != 1 || got[0].PaperID != "A1" {
		t.Errorf("archive = %v, want single A1", idsOf(got))
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	archive := []types.ArchiveEntry{entry("A1")}
	today := []types.ArchiveEntry{entry("B2")}

	Reconcile(today, archive)
	if len(archive) != 1 || archive[0].PaperID != "A1" {
		t.Errorf("input archive mutated: %v", idsOf(archive))
	}
}

func idsOf(entries []types.ArchiveEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.PaperID)
	}
	return out
}
