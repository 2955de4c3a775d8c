package prune

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/trusty-cli/trusty/types"
)

// Record is the persisted suggestion state for one task.
type Record struct {
	LastSuggestedAt time.Time     `json:"lastSuggestedAt"`
	BackoffInterval time.Duration `json:"backoffInterval"`
	DismissalCount  int           `json:"dismissalCount"`
}

// History is the suggestion-record set, keyed by task id. It lives in its
// own file, independent of the task graph, and survives task deletion until
// GC is run with the surviving ids.
type History struct {
	path    string
	records map[int]Record
}

// historyFile is the on-disk shape. Task ids are serialized as JSON object
// keys, so the map is keyed by string on the wire.
type historyFile struct {
	Records map[string]Record `json:"records"`
}

// LoadHistory reads the history file. A missing file is an empty history
// (losing backoff state only means suggesting earlier, never data loss);
// an unreadable or unparseable file is a StorageError.
func LoadHistory(path string) (*History, error) {
	h := &History{path: path, records: make(map[int]Record)}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return nil, &types.StorageError{Op: "load", Path: path, Err: err}
	}
	if len(data) == 0 {
		return h, nil
	}
	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &types.StorageError{Op: "load", Path: path, Err: err}
	}
	for key, rec := range file.Records {
		var id int
		if _, err := fmt.Sscanf(key, "%d", &id); err != nil {
			return nil, &types.StorageError{Op: "load", Path: path, Err: fmt.Errorf("bad record key %q", key)}
		}
		h.records[id] = rec
	}
	return h, nil
}

// Save writes the history atomically (temp file then rename).
func (h *History) Save() error {
	file := historyFile{Records: make(map[string]Record, len(h.records))}
	for id, rec := range h.records {
		file.Records[fmt.Sprintf("%d", id)] = rec
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return &types.StorageError{Op: "save", Path: h.path, Err: err}
	}
	dir := filepath.Dir(h.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &types.StorageError{Op: "save", Path: h.path, Err: err}
		}
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &types.StorageError{Op: "save", Path: h.path, Err: err}
	}
	if err := os.Rename(tmp, h.path); err != nil {
		_ = os.Remove(tmp)
		return &types.StorageError{Op: "save", Path: h.path, Err: err}
	}
	return nil
}

// Get returns the record for a task id.
func (h *History) Get(taskID int) (Record, bool) {
	rec, ok := h.records[taskID]
	return rec, ok
}

// Put stores the record for a task id.
func (h *History) Put(taskID int, rec Record) {
	h.records[taskID] = rec
}

// Delete removes the record for a task id.
func (h *History) Delete(taskID int) {
	delete(h.records, taskID)
}

// Len returns the number of records.
func (h *History) Len() int { return len(h.records) }

// IDs returns the recorded task ids in ascending order.
func (h *History) IDs() []int {
	ids := make([]int, 0, len(h.records))
	for id := range h.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// GC drops records whose task no longer exists in the graph.
func (h *History) GC(liveIDs map[int]bool) int {
	removed := 0
	for id := range h.records {
		if !liveIDs[id] {
			delete(h.records, id)
			removed++
		}
	}
	return removed
}
