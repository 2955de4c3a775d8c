package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/trusty-cli/trusty/models"
	"github.com/trusty-cli/trusty/types"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitGeneric},
		{"validation", types.NewValidationError("unknown-task", "task 9 not found", 9), ExitValidation},
		{"wrapped validation", fmt.Errorf("context: %w", types.NewValidationError("cycle", "nope")), ExitValidation},
		{"storage", &types.StorageError{Op: "load", Path: "tasks.json", Err: errors.New("corrupt")}, ExitStorage},
		{"generation", &types.GenerationError{Kind: "timeout", Err: types.ErrGenerationTimeout}, ExitGeneration},
		{"wrapped generation", fmt.Errorf("add: %w", &types.GenerationError{Kind: "unavailable", Err: types.ErrGenerationUnavailable}), ExitGeneration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestParseIDList(t *testing.T) {
	got, err := parseIDList("3, 1,7")
	if err != nil {
		t.Fatalf("parseIDList: %v", err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 7 {
		t.Fatalf("parseIDList = %v", got)
	}
	if _, err := parseIDList("1,x"); err == nil {
		t.Error("parseIDList accepted x")
	}
}

func TestHasTagNormalizesFilterInput(t *testing.T) {
	task := models.NewTask(1, "t")
	task.Tags = models.NormalizeTags([]string{"Backend", "db"})

	for _, in := range []string{"backend", "Backend", " BACKEND "} {
		if !hasTag(task, in) {
			t.Errorf("hasTag(%q) = false, want true", in)
		}
	}
	if hasTag(task, "frontend") {
		t.Error("hasTag(frontend) = true")
	}
}

func TestParseTaskID(t *testing.T) {
	if _, err := parseTaskID("0"); err == nil {
		t.Error("id 0 accepted")
	}
	if _, err := parseTaskID("-3"); err == nil {
		t.Error("negative id accepted")
	}
	id, err := parseTaskID("12")
	if err != nil || id != 12 {
		t.Errorf("parseTaskID(12) = %d, %v", id, err)
	}
}
