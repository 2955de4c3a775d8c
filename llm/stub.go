package llm

import (
	"context"
	"fmt"
	"strings"
)

// StubProvider is a deterministic Provider for tests and offline use. It
// derives titles from the input prompt so output is stable across runs and
// requires no network.
type StubProvider struct{}

// NewStubProvider returns the deterministic provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// GenerateTask echoes the prompt as a medium-priority task.
func (s *StubProvider) GenerateTask(ctx context.Context, prompt string) (GeneratedTask, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedTask{}, err
	}
	title := strings.TrimSpace(prompt)
	if runes := []rune(title); len(runes) > 60 {
		title = strings.TrimSpace(string(runes[:60]))
	}
	if title == "" {
		title = "Untitled task"
	}
	return GeneratedTask{
		Title:       title,
		Description: strings.TrimSpace(prompt),
		Priority:    "medium",
		Tags:        []string{"generated"},
	}, nil
}

// DecomposeTask produces count numbered steps under the parent title.
func (s *StubProvider) DecomposeTask(ctx context.Context, parent ParentContext, count int) ([]GeneratedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 3
	}
	out := make([]GeneratedTask, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, GeneratedTask{
			Title:       fmt.Sprintf("%s: step %d", parent.Title, i),
			Description: fmt.Sprintf("Step %d of %d for %q", i, count, parent.Title),
			Priority:    parent.Priority,
			Tags:        parent.Tags,
		})
	}
	return out, nil
}
