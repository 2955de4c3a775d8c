// Package prune decides which stale tasks to suggest for archival, with a
// persisted per-task exponential backoff so the same suggestion is not
// repeated on every invocation.
package prune

import (
	"time"

	"github.com/trusty-cli/trusty/models"
)

// Verdict is the outcome of evaluating one task in an advisory pass.
type Verdict string

const (
	VerdictSuggest Verdict = "suggest"
	VerdictSkip    Verdict = "skip"
)

// Config holds the advisor tunables.
type Config struct {
	// StaleAfter is how long a finished task must sit unmodified before it
	// becomes eligible for a prune suggestion.
	StaleAfter time.Duration
	// BaseInterval seeds the backoff on a task's first suggestion.
	BaseInterval time.Duration
	// MaxInterval caps the backoff growth.
	MaxInterval time.Duration
}

// DefaultConfig mirrors the viper defaults: 14 days stale, 24h base, 30
// days ceiling.
func DefaultConfig() Config {
	return Config{
		StaleAfter:   14 * 24 * time.Hour,
		BaseInterval: 24 * time.Hour,
		MaxInterval:  30 * 24 * time.Hour,
	}
}

// Advisor evaluates tasks against the staleness rule and the backoff
// history. It never mutates the task graph.
type Advisor struct {
	cfg     Config
	history *History
}

// NewAdvisor creates an advisor over a suggestion history.
func NewAdvisor(cfg Config, history *History) *Advisor {
	return &Advisor{cfg: cfg, history: history}
}

// prunableStatuses are the effective statuses that make a task eligible.
var prunableStatuses = map[models.TaskStatus]bool{
	models.StatusDone:      true,
	models.StatusCancelled: true,
	models.StatusDeferred:  true,
}

// Eligible reports whether a task could ever be suggested: finished (done,
// cancelled, or deferred by effective status) and unmodified for longer
// than the staleness threshold.
func (a *Advisor) Eligible(t models.Task, effective models.TaskStatus, now time.Time) bool {
	if !prunableStatuses[effective] {
		return false
	}
	return now.Sub(t.UpdatedAt) >= a.cfg.StaleAfter
}

// Evaluate returns the verdict for one task in this advisory pass. An
// eligible task is only surfaced when its backoff interval has elapsed
// since it was last suggested; the verdict itself mutates nothing.
func (a *Advisor) Evaluate(t models.Task, effective models.TaskStatus, now time.Time) Verdict {
	if !a.Eligible(t, effective, now) {
		return VerdictSkip
	}
	rec, ok := a.history.Get(t.ID)
	if !ok {
		return VerdictSuggest
	}
	if now.Sub(rec.LastSuggestedAt) >= rec.BackoffInterval {
		return VerdictSuggest
	}
	return VerdictSkip
}

// Suggested records that a suggestion was surfaced for the task. A first
// suggestion seeds the record at the base interval.
func (a *Advisor) Suggested(taskID int, now time.Time) {
	rec, ok := a.history.Get(taskID)
	if !ok {
		rec = Record{BackoffInterval: a.cfg.BaseInterval}
	}
	rec.LastSuggestedAt = now
	a.history.Put(taskID, rec)
}

// Dismissed doubles the task's backoff interval, capped at the ceiling.
func (a *Advisor) Dismissed(taskID int, now time.Time) {
	rec, ok := a.history.Get(taskID)
	if !ok {
		rec = Record{BackoffInterval: a.cfg.BaseInterval, LastSuggestedAt: now}
	}
	rec.DismissalCount++
	rec.BackoffInterval = min(rec.BackoffInterval*2, a.cfg.MaxInterval)
	a.history.Put(taskID, rec)
}

// Accepted removes the task's record. If the task somehow becomes eligible
// again later, backoff restarts at the base interval.
func (a *Advisor) Accepted(taskID int) {
	a.history.Delete(taskID)
}
