package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
	"github.com/trusty-cli/trusty/types"
	yaml "gopkg.in/yaml.v3"
)

const (
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	allowMissingKey   = "allowMissing"
	defaultDataFile   = "tasks.json"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileTaskStore implements TaskStore on a single flat file. It supports
// JSON, YAML, and TOML, verifies a SHA-256 checksum sidecar on load, and
// holds a flock file lock from Initialize to Close so exactly one process
// owns the graph for the duration of a command.
type FileTaskStore struct {
	filePath     string
	format       string
	allowMissing bool
	flk          *flock.Flock
}

// NewFileTaskStore creates an uninitialized store; Initialize must be
// called before use.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{}
}

// Initialize configures the store and acquires the file lock. Recognized
// config keys: dataFile, dataFileFormat (json|yaml|toml), allowMissing
// ("true" lets Load treat a missing file as an empty graph, used by init
// and by freshly initialized projects).
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		switch strings.ToLower(val) {
		case formatJSON, formatYAML, formatTOML:
			s.format = strings.ToLower(val)
		default:
			return fmt.Errorf("unsupported dataFileFormat %q (supported: json, yaml, toml)", val)
		}
	} else {
		s.format = defaultDataFormat
	}
	s.allowMissing = config[allowMissingKey] == "true"

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath + ".lock")
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", s.filePath, err)
	}
	return nil
}

// calculateChecksum computes the SHA-256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *FileTaskStore) loadErr(err error) error {
	return &types.StorageError{Op: "load", Path: s.filePath, Err: err}
}

func (s *FileTaskStore) saveErr(err error) error {
	return &types.StorageError{Op: "save", Path: s.filePath, Err: err}
}

// Load reads the task file, verifies its checksum, unmarshals it, and
// audits the graph invariants. Corrupt state is surfaced, never repaired or
// silently replaced with an empty graph.
func (s *FileTaskStore) Load() (*task.Graph, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if s.allowMissing {
				return task.NewGraph(), nil
			}
			return nil, s.loadErr(fmt.Errorf("task file does not exist (run 'trusty init' first): %w", err))
		}
		return nil, s.loadErr(err)
	}

	checksumPath := s.filePath + checksumSuffix
	if expected, err := os.ReadFile(checksumPath); err == nil {
		want := strings.TrimSpace(string(expected))
		if got := calculateChecksum(data); got != want {
			return nil, s.loadErr(fmt.Errorf("checksum mismatch (want %s, got %s): file is corrupt or was edited outside trusty", want, got))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, s.loadErr(fmt.Errorf("reading checksum file: %w", err))
	}
	// No checksum sidecar: data predates checksums or was hand-migrated.
	// Allow the load; the next save writes a fresh checksum.

	if len(data) == 0 {
		return task.NewGraph(), nil
	}

	var file models.TaskFile
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &file)
	case formatYAML:
		err = yaml.Unmarshal(data, &file)
	case formatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		err = fmt.Errorf("unsupported data format %q", s.format)
	}
	if err != nil {
		return nil, s.loadErr(fmt.Errorf("unmarshal %s: %w", s.format, err))
	}

	g := task.FromTasks(file.Tasks, file.NextID)
	if err := g.Check(); err != nil {
		return nil, s.loadErr(fmt.Errorf("task graph failed invariant check: %w", err))
	}
	return g, nil
}

// Save marshals the full graph, writes it and its checksum to temp files,
// and renames both into place. Failure at any step leaves the previous file
// and checksum untouched.
func (s *FileTaskStore) Save(g *task.Graph) error {
	file := models.TaskFile{
		SchemaVersion: models.SchemaVersion,
		Revision:      uuid.NewString(),
		SavedAt:       time.Now().UTC(),
		NextID:        g.NextID(),
		Tasks:         g.Tasks(),
	}

	var data []byte
	var err error
	switch s.format {
	case formatJSON:
		data, err = json.MarshalIndent(file, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(file)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encErr := toml.NewEncoder(buf).Encode(file); encErr != nil {
			err = encErr
		} else {
			data = buf.Bytes()
		}
	default:
		err = fmt.Errorf("unsupported data format %q", s.format)
	}
	if err != nil {
		return s.saveErr(fmt.Errorf("marshal %s: %w", s.format, err))
	}

	tmpPath := s.filePath + ".tmp"
	checksumPath := s.filePath + checksumSuffix
	tmpChecksumPath := checksumPath + ".tmp"
	defer func() { _ = os.Remove(tmpPath) }()
	defer func() { _ = os.Remove(tmpChecksumPath) }()

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return s.saveErr(err)
	}
	if err := os.WriteFile(tmpChecksumPath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return s.saveErr(err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return s.saveErr(err)
	}
	if err := os.Rename(tmpChecksumPath, checksumPath); err != nil {
		return s.saveErr(fmt.Errorf("data file updated but checksum rename failed, store may read as corrupt: %w", err))
	}
	return nil
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
