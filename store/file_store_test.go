package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
	"github.com/trusty-cli/trusty/types"
)

func newStore(t *testing.T, dir, format string, allowMissing bool) *FileTaskStore {
	t.Helper()
	s := NewFileTaskStore()
	cfg := map[string]string{
		"dataFile":       filepath.Join(dir, "tasks."+format),
		"dataFileFormat": format,
	}
	if allowMissing {
		cfg["allowMissing"] = "true"
	}
	if err := s.Initialize(cfg); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleGraph(t *testing.T) *task.Graph {
	t.Helper()
	g := task.NewGraph()
	a, err := g.Add(task.Draft{Title: "design schema", Priority: models.PriorityHigh, Tags: []string{"db"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Add(task.Draft{Title: "write migrations", Dependencies: []int{a.ID}}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddSubtask(a.ID, task.Draft{Title: "sketch tables"}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRoundTripAllFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			s := newStore(t, t.TempDir(), format, true)
			g := sampleGraph(t)
			if err := s.Save(g); err != nil {
				t.Fatalf("Save: %v", err)
			}

			loaded, err := s.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded.NextID() != g.NextID() {
				t.Errorf("NextID = %d, want %d", loaded.NextID(), g.NextID())
			}
			// omitempty drops empty edge slices on the wire; nil and empty
			// are the same thing here.
			if diff := cmp.Diff(g.Tasks(), loaded.Tasks(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("tasks mismatch (-saved +loaded):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		s := newStore(t, t.TempDir(), "json", true)
		g, err := s.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if g.Len() != 0 {
			t.Fatalf("expected empty graph, got %d tasks", g.Len())
		}
	})
	t.Run("forbidden", func(t *testing.T) {
		s := newStore(t, t.TempDir(), "json", false)
		_, err := s.Load()
		if !types.IsStorage(err) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}

func TestLoadDetectsTamperedFile(t *testing.T) {
	s := newStore(t, t.TempDir(), "json", true)
	if err := s.Save(sampleGraph(t)); err != nil {
		t.Fatal(err)
	}

	// Edit the file behind the store's back; the checksum no longer matches.
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		t.Fatal(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = s.Load()
	if !types.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestLoadWithoutChecksumSidecar(t *testing.T) {
	s := newStore(t, t.TempDir(), "json", true)
	g := sampleGraph(t)
	if err := s.Save(g); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(s.filePath + ".checksum"); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load without sidecar: %v", err)
	}
	if loaded.Len() != g.Len() {
		t.Fatalf("Len = %d, want %d", loaded.Len(), g.Len())
	}
}

func TestLoadRejectsCorruptGraph(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, dir, "json", true)

	// A dependency edge with no mirror image on the other side.
	broken := `{
  "schemaVersion": "1.0.0",
  "nextId": 3,
  "tasks": [
    {"id": 1, "title": "a", "status": "pending", "priority": "medium",
     "createdAt": "2026-01-01T00:00:00Z", "updatedAt": "2026-01-01T00:00:00Z"},
    {"id": 2, "title": "b", "status": "pending", "priority": "medium",
     "dependencies": [1],
     "createdAt": "2026-01-01T00:00:00Z", "updatedAt": "2026-01-01T00:00:00Z"}
  ]
}`
	if err := os.WriteFile(s.filePath, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load()
	if !types.IsStorage(err) {
		t.Fatalf("expected storage error for invariant violation, got %v", err)
	}
}

func TestLoadRejectsMalformedData(t *testing.T) {
	s := newStore(t, t.TempDir(), "json", true)
	if err := os.WriteFile(s.filePath, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load()
	if !types.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestInitializeRejectsUnknownFormat(t *testing.T) {
	s := NewFileTaskStore()
	err := s.Initialize(map[string]string{
		"dataFile":       filepath.Join(t.TempDir(), "tasks.xml"),
		"dataFileFormat": "xml",
	})
	if err == nil {
		t.Fatal("xml format accepted")
	}
}

func TestSavePreservesNextIDHighWaterMark(t *testing.T) {
	s := newStore(t, t.TempDir(), "json", true)
	g := sampleGraph(t)
	highest := g.NextID() - 1
	if err := g.Delete(highest); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(g); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NextID() != g.NextID() {
		t.Fatalf("NextID = %d, want %d (deleted ids must not be reissued)", loaded.NextID(), g.NextID())
	}
}

func TestRevisionChangesEachSave(t *testing.T) {
	s := newStore(t, t.TempDir(), "json", true)
	g := sampleGraph(t)

	readRevision := func() string {
		t.Helper()
		data, err := os.ReadFile(s.filePath)
		if err != nil {
			t.Fatal(err)
		}
		var file models.TaskFile
		if err := json.Unmarshal(data, &file); err != nil {
			t.Fatal(err)
		}
		return file.Revision
	}

	if err := s.Save(g); err != nil {
		t.Fatal(err)
	}
	first := readRevision()
	if err := s.Save(g); err != nil {
		t.Fatal(err)
	}
	second := readRevision()
	if first == "" || first == second {
		t.Fatalf("revisions %q and %q should be distinct non-empty stamps", first, second)
	}
}
