package llm

import "context"

// GeneratedTask is one title/description pair proposed by a provider,
// with optional priority and tags.
type GeneratedTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ParentContext describes the task being decomposed, passed to the provider
// so subtasks stay on topic.
type ParentContext struct {
	Title       string
	Description string
	Priority    string
	Tags        []string
}

// Provider is the text-generation capability consumed by the engine. Both
// methods are synchronous with a bounded timeout; failures are recoverable
// and commands degrade to "no AI suggestion produced" without partial graph
// mutation.
type Provider interface {
	// GenerateTask drafts a single task from a free-form prompt.
	GenerateTask(ctx context.Context, prompt string) (GeneratedTask, error)

	// DecomposeTask proposes count subtasks for the given parent.
	DecomposeTask(ctx context.Context, parent ParentContext, count int) ([]GeneratedTask, error)
}
