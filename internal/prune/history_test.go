package prune

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/trusty-cli/trusty/types"
)

func TestLoadHistoryMissingFileIsEmpty(t *testing.T) {
	h, err := LoadHistory(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("Len = %d, want 0", h.Len())
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.Put(3, Record{LastSuggestedAt: when, BackoffInterval: 48 * time.Hour, DismissalCount: 1})
	h.Put(7, Record{LastSuggestedAt: when, BackoffInterval: 24 * time.Hour})
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(h.records, loaded.records); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadHistoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadHistory(path)
	if !types.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestLoadHistoryBadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`{"records":{"banana":{}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadHistory(path)
	if !types.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.json")
	h, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	h.Put(1, Record{BackoffInterval: time.Hour})
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestHistoryGC(t *testing.T) {
	h := &History{records: map[int]Record{
		1: {BackoffInterval: time.Hour},
		2: {BackoffInterval: time.Hour},
		3: {BackoffInterval: time.Hour},
	}}
	removed := h.GC(map[int]bool{2: true})
	if removed != 2 {
		t.Fatalf("GC removed %d, want 2", removed)
	}
	if got := h.IDs(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("IDs = %v, want [2]", got)
	}
}
