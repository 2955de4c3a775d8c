package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/llm"
	"github.com/trusty-cli/trusty/models"
)

var (
	addDescription string
	addPriority    string
	addComplexity  string
	addTags        string
	addDeps        string
	addPrompt      string
)

// addCmd creates a new root task, either from flags or drafted by the
// text-generation provider via --prompt.
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task. Provide a title directly, or use --prompt to have the
configured text-generation provider draft the title, description,
priority, and tags for you.

Examples:
  trusty add "Build user authentication" --priority high
  trusty add "Ship v2" --deps 3,4 --tags backend,release
  trusty add --prompt "we need rate limiting on the public API"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := buildDraft(cmd.Context(), args)
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			created, err := g.Add(draft)
			if err != nil {
				return false, err
			}
			fmt.Printf("Created task #%d: %s\n", created.ID, created.Title)
			return true, nil
		})
	},
}

// buildDraft assembles a task draft from flags, consulting the provider
// when --prompt is set. Generation failure produces zero tasks.
func buildDraft(ctx context.Context, args []string) (task.Draft, error) {
	d := task.Draft{Description: addDescription}

	if addPrompt != "" {
		generated, err := generateFromPrompt(ctx, addPrompt)
		if err != nil {
			return task.Draft{}, err
		}
		d.Title = generated.Title
		d.Description = generated.Description
		d.Tags = generated.Tags
		if generated.Priority != "" {
			p, err := models.ParsePriority(generated.Priority)
			if err == nil {
				d.Priority = p
			}
		}
		fmt.Printf("Generated task: %s (priority %s)\n", d.Title, d.Priority)
	} else {
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			return task.Draft{}, fmt.Errorf("a title is required when --prompt is not used")
		}
		d.Title = strings.TrimSpace(args[0])
	}

	// Explicit flags win over generated values.
	if addPriority != "" {
		p, err := models.ParsePriority(addPriority)
		if err != nil {
			return task.Draft{}, err
		}
		d.Priority = p
	}
	if addComplexity != "" {
		c, err := models.ParseComplexity(addComplexity)
		if err != nil {
			return task.Draft{}, err
		}
		d.Complexity = c
	}
	if addTags != "" {
		d.Tags = splitCommaList(addTags)
	}
	if addDeps != "" {
		deps, err := parseIDList(addDeps)
		if err != nil {
			return task.Draft{}, err
		}
		d.Dependencies = deps
	}
	return d, nil
}

// generateFromPrompt asks the configured provider to draft a task.
func generateFromPrompt(ctx context.Context, prompt string) (llm.GeneratedTask, error) {
	provider, err := newProvider()
	if err != nil {
		return llm.GeneratedTask{}, err
	}
	LogVerbose("generating task from prompt (%d chars)", len(prompt))
	return provider.GenerateTask(ctx, prompt)
}

// newProvider builds the configured text-generation provider, pointing it
// at the project prompt override directory.
func newProvider() (llm.Provider, error) {
	cfg := GetConfig().LLM
	if cfg.PromptDir == "" {
		cfg.PromptDir = filepath.Join(GetConfig().Project.RootDir, "prompts")
	}
	return llm.NewProvider(&cfg)
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDList(s string) ([]int, error) {
	parts := splitCommaList(s)
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority (low, medium, high, critical)")
	addCmd.Flags().StringVar(&addComplexity, "complexity", "", "complexity (simple, medium, complex)")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	addCmd.Flags().StringVar(&addDeps, "deps", "", "comma-separated ids of tasks this task depends on")
	addCmd.Flags().StringVar(&addPrompt, "prompt", "", "draft the task with the text-generation provider")
}
