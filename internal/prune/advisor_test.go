package prune

import (
	"testing"
	"time"

	"github.com/trusty-cli/trusty/models"
)

func testConfig() Config {
	return Config{
		StaleAfter:   14 * 24 * time.Hour,
		BaseInterval: 24 * time.Hour,
		MaxInterval:  96 * time.Hour,
	}
}

func newTestAdvisor() *Advisor {
	return NewAdvisor(testConfig(), &History{records: make(map[int]Record)})
}

func staleTask(id int, status models.TaskStatus, now time.Time) models.Task {
	t := models.NewTask(id, "old task")
	t.Status = status
	t.UpdatedAt = now.Add(-30 * 24 * time.Hour)
	return t
}

func TestEligibleRequiresFinishedStatus(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()

	cases := []struct {
		status models.TaskStatus
		want   bool
	}{
		{models.StatusDone, true},
		{models.StatusCancelled, true},
		{models.StatusDeferred, true},
		{models.StatusPending, false},
		{models.StatusInProgress, false},
		{models.StatusBlocked, false},
	}
	for _, tc := range cases {
		task := staleTask(1, tc.status, now)
		if got := a.Eligible(task, tc.status, now); got != tc.want {
			t.Errorf("Eligible(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestEligibleUsesEffectiveStatus(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()

	// Explicitly pending, but effectively done (all subtasks finished).
	task := staleTask(1, models.StatusPending, now)
	if !a.Eligible(task, models.StatusDone, now) {
		t.Error("effectively done task should be eligible")
	}
}

func TestEligibleRequiresStaleness(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()

	task := models.NewTask(1, "fresh")
	task.Status = models.StatusDone
	task.UpdatedAt = now.Add(-time.Hour)
	if a.Eligible(task, models.StatusDone, now) {
		t.Error("recently touched task should not be eligible")
	}
}

func TestEvaluateFirstTimeSuggests(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	task := staleTask(1, models.StatusDone, now)

	if got := a.Evaluate(task, models.StatusDone, now); got != VerdictSuggest {
		t.Fatalf("Evaluate = %s, want suggest", got)
	}
}

func TestDismissalBacksOff(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	task := staleTask(1, models.StatusDone, now)

	a.Suggested(task.ID, now)
	a.Dismissed(task.ID, now)

	// Backoff doubled to 48h; within that window the task stays quiet.
	if got := a.Evaluate(task, models.StatusDone, now.Add(24*time.Hour)); got != VerdictSkip {
		t.Errorf("24h after dismissal: %s, want skip", got)
	}
	if got := a.Evaluate(task, models.StatusDone, now.Add(49*time.Hour)); got != VerdictSuggest {
		t.Errorf("49h after dismissal: %s, want suggest", got)
	}
}

func TestRepeatedDismissalsDoubleUpToCeiling(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	id := 1

	a.Suggested(id, now)
	intervals := []time.Duration{
		48 * time.Hour, // base 24h doubled once
		96 * time.Hour,
		96 * time.Hour, // capped
		96 * time.Hour,
	}
	for i, want := range intervals {
		a.Dismissed(id, now)
		rec, ok := a.history.Get(id)
		if !ok {
			t.Fatalf("record missing after dismissal %d", i+1)
		}
		if rec.BackoffInterval != want {
			t.Errorf("after %d dismissal(s): backoff = %s, want %s", i+1, rec.BackoffInterval, want)
		}
		if rec.DismissalCount != i+1 {
			t.Errorf("after %d dismissal(s): count = %d", i+1, rec.DismissalCount)
		}
	}
}

func TestSuggestedRefreshesTimestampWithoutGrowingBackoff(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	id := 1

	a.Suggested(id, now)
	a.Dismissed(id, now)
	later := now.Add(72 * time.Hour)
	a.Suggested(id, later)

	rec, _ := a.history.Get(id)
	if !rec.LastSuggestedAt.Equal(later) {
		t.Errorf("LastSuggestedAt = %s, want %s", rec.LastSuggestedAt, later)
	}
	if rec.BackoffInterval != 48*time.Hour {
		t.Errorf("re-suggestion changed backoff to %s", rec.BackoffInterval)
	}
}

func TestAcceptedResetsBackoff(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	task := staleTask(1, models.StatusDone, now)

	a.Suggested(task.ID, now)
	a.Dismissed(task.ID, now)
	a.Accepted(task.ID)

	if _, ok := a.history.Get(task.ID); ok {
		t.Fatal("record survived acceptance")
	}
	// Were the task to reappear, it starts from scratch.
	if got := a.Evaluate(task, models.StatusDone, now); got != VerdictSuggest {
		t.Fatalf("Evaluate after acceptance = %s, want suggest", got)
	}
}

func TestEvaluateNeverMutatesHistory(t *testing.T) {
	a := newTestAdvisor()
	now := time.Now().UTC()
	task := staleTask(1, models.StatusDone, now)

	a.Evaluate(task, models.StatusDone, now)
	if a.history.Len() != 0 {
		t.Fatal("Evaluate wrote a record")
	}
}
