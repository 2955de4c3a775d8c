package models

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"IN-PROGRESS", StatusInProgress, false},
		{"  done  ", StatusDone, false},
		{"cancelled", StatusCancelled, false},
		{"canceled", "", true},
		{"todo", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) accepted", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	order := []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should outrank %s", order[i], order[i-1])
		}
	}
}

func TestParsePriority(t *testing.T) {
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority accepted urgent")
	}
	got, err := ParsePriority("Critical")
	if err != nil || got != PriorityCritical {
		t.Errorf("ParsePriority(Critical) = %s, %v", got, err)
	}
}

func TestParseComplexity(t *testing.T) {
	got, err := ParseComplexity("simple")
	if err != nil || got != ComplexitySimple {
		t.Errorf("ParseComplexity(simple) = %s, %v", got, err)
	}
	if _, err := ParseComplexity("hard"); err == nil {
		t.Error("ParseComplexity accepted hard")
	}
}

func TestValidateTask(t *testing.T) {
	valid := NewTask(1, "a valid task")

	cases := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"zero id", func(t *Task) { t.ID = 0 }, false},
		{"negative id", func(t *Task) { t.ID = -4 }, false},
		{"empty title", func(t *Task) { t.Title = "" }, false},
		{"title too long", func(t *Task) { t.Title = strings.Repeat("x", 256) }, false},
		{"bad status", func(t *Task) { t.Status = "paused" }, false},
		{"bad priority", func(t *Task) { t.Priority = "urgent" }, false},
		{"bad complexity", func(t *Task) { t.Complexity = "impossible" }, false},
		{"empty complexity ok", func(t *Task) { t.Complexity = "" }, true},
		{"zero parent id", func(t *Task) { zero := 0; t.ParentID = &zero }, false},
		{"zero dependency id", func(t *Task) { t.Dependencies = []int{0} }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := valid
			tc.mutate(&task)
			err := ValidateStruct(task)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("validation passed")
			}
		})
	}
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(5, "fresh")
	if task.Status != StatusPending || task.Priority != PriorityMedium {
		t.Errorf("defaults: status=%s priority=%s", task.Status, task.Priority)
	}
	if task.Tags == nil || task.SubtaskIDs == nil || task.Dependencies == nil || task.Dependents == nil {
		t.Error("edge slices not initialized")
	}
	if err := ValidateStruct(task); err != nil {
		t.Errorf("fresh task invalid: %v", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Backend ", "db", "BACKEND", "", "api"})
	want := []string{"api", "backend", "db"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeTags mismatch (-want +got):\n%s", diff)
	}
}
