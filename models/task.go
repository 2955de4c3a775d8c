package models

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible explicit statuses of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
	StatusDeferred   TaskStatus = "deferred"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllStatuses lists every valid status value, for flag help and validation
// messages.
var AllStatuses = []TaskStatus{
	StatusPending, StatusInProgress, StatusDone,
	StatusBlocked, StatusDeferred, StatusCancelled,
}

// ParseStatus converts a user-supplied string into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllStatuses, st) {
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q (use pending, in-progress, done, blocked, deferred, or cancelled)", s)
}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// priorityRank orders priorities for recommendation; higher is more urgent.
var priorityRank = map[TaskPriority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

// Rank returns the ordinal of the priority (low=0 .. critical=3).
func (p TaskPriority) Rank() int { return priorityRank[p] }

// ParsePriority converts a user-supplied string into a TaskPriority.
func ParsePriority(s string) (TaskPriority, error) {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := priorityRank[p]; ok {
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (use low, medium, high, or critical)", s)
}

// TaskComplexity is an optional ordered effort scale.
type TaskComplexity string

const (
	ComplexitySimple  TaskComplexity = "simple"
	ComplexityMedium  TaskComplexity = "medium"
	ComplexityComplex TaskComplexity = "complex"
)

// ParseComplexity converts a user-supplied string into a TaskComplexity.
func ParseComplexity(s string) (TaskComplexity, error) {
	c := TaskComplexity(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return c, nil
	}
	return "", fmt.Errorf("invalid complexity %q (use simple, medium, or complex)", s)
}

// Task represents a unit of work. Ids are positive integers assigned at
// creation and never reused. Edge slices (Dependencies, Dependents,
// SubtaskIDs) are maintained symmetrically by the graph engine; the model
// itself only stores them.
type Task struct {
	ID           int            `json:"id" yaml:"id" toml:"id" validate:"required,min=1"`
	Title        string         `json:"title" yaml:"title" toml:"title" validate:"required,min=1,max=255"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Status       TaskStatus     `json:"status" yaml:"status" toml:"status" validate:"required,oneof=pending in-progress done blocked deferred cancelled"`
	Priority     TaskPriority   `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=low medium high critical"`
	Complexity   TaskComplexity `json:"complexity,omitempty" yaml:"complexity,omitempty" toml:"complexity,omitempty" validate:"omitempty,oneof=simple medium complex"`
	Tags         []string       `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	ParentID     *int           `json:"parentId,omitempty" yaml:"parentId,omitempty" toml:"parentId,omitempty" validate:"omitempty,min=1"`
	SubtaskIDs   []int          `json:"subtaskIds,omitempty" yaml:"subtaskIds,omitempty" toml:"subtaskIds,omitempty" validate:"dive,min=1"`
	Dependencies []int          `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty" validate:"dive,min=1"`
	Dependents   []int          `json:"dependents,omitempty" yaml:"dependents,omitempty" toml:"dependents,omitempty" validate:"dive,min=1"`
	CreatedAt    time.Time      `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	UpdatedAt    time.Time      `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
}

// TaskFile is the on-disk representation of the whole graph. NextID is a
// high-water mark so deleted ids are never handed out again; Revision is a
// fresh uuid stamped on every save.
type TaskFile struct {
	SchemaVersion string    `json:"schemaVersion" yaml:"schemaVersion" toml:"schemaVersion" validate:"required"`
	Revision      string    `json:"revision,omitempty" yaml:"revision,omitempty" toml:"revision,omitempty"`
	SavedAt       time.Time `json:"savedAt,omitempty" yaml:"savedAt,omitempty" toml:"savedAt,omitempty"`
	NextID        int       `json:"nextId" yaml:"nextId" toml:"nextId" validate:"min=1"`
	Tasks         []Task    `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
}

// SchemaVersion is the current task-file schema.
const SchemaVersion = "1.0.0"

var validate = validator.New()

// ValidateStruct performs tag-based validation on any struct.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field %q failed rule %q (value %v)", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// NewTask returns a pending task with timestamps set and edge slices
// initialized. The caller assigns the id.
func NewTask(id int, title string) Task {
	now := time.Now().UTC()
	return Task{
		ID:           id,
		Title:        title,
		Status:       StatusPending,
		Priority:     PriorityMedium,
		Tags:         []string{},
		SubtaskIDs:   []int{},
		Dependencies: []int{},
		Dependents:   []int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeTags lowercases, trims, deduplicates and sorts a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
