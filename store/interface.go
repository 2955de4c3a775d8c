package store

import "github.com/trusty-cli/trusty/internal/task"

// TaskStore defines the persistence contract for the task graph. A command
// loads the full graph once, performs one logical operation, and writes the
// graph back; both operations are all-or-nothing.
type TaskStore interface {
	// Initialize configures the store (file path, data format) and acquires
	// the file lock. It must be called before Load or Save.
	Initialize(config map[string]string) error

	// Load reads and validates the full graph. A missing file yields an
	// empty graph only when the store was initialized with allowMissing;
	// otherwise missing, corrupt, or invariant-violating state is a
	// StorageError so an unreadable file is never destroyed by a later save.
	Load() (*task.Graph, error)

	// Save atomically writes the full graph and its checksum.
	Save(g *task.Graph) error

	// Close releases the file lock.
	Close() error
}
