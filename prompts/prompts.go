// Package prompts holds the system prompt templates sent to the
// text-generation provider, with optional per-project file overrides.
package prompts

import "fmt"

// GenerateTaskSystemPrompt instructs the model to draft a single structured
// task from a free-form user prompt.
const GenerateTaskSystemPrompt = `You are a task generation assistant. Given a user's prompt about something they need to do, generate a structured task with the following JSON format:
{
  "title": "Brief, actionable task title",
  "description": "Detailed description of what needs to be done",
  "priority": "critical|high|medium|low",
  "tags": ["tag1", "tag2", "tag3"]
}

Rules:
- Title should be concise and action-oriented (5-10 words)
- Description should provide context and details
- Priority: "critical" for emergencies, "high" for urgent, "medium" for normal, "low" for nice-to-have
- Tags should be relevant categories (e.g., "backend", "frontend", "testing", "documentation", "refactoring", "bugfix", "feature")
- Output ONLY valid JSON, no additional text`

// decomposeTemplate instructs the model to split a parent task into a fixed
// number of subtasks.
const decomposeTemplate = `You are a task decomposition assistant. Given a parent task, break it down into %d logical subtasks that, when completed, will accomplish the parent task.

Parent task details:
- Title: %s
- Description: %s
- Priority: %s
- Tags: %s

Generate a JSON response with the following format:
{
  "subtasks": [
    {
      "title": "Brief, actionable subtask title",
      "description": "Detailed description of what needs to be done",
      "priority": "critical|high|medium|low",
      "tags": ["tag1", "tag2"]
    }
  ]
}

Rules:
- Each subtask should be a concrete, actionable step
- Subtasks should be logically ordered when possible
- Subtask priorities can match the parent or be adjusted by importance
- Tags should include relevant parent tags plus any subtask-specific ones
- Ensure subtasks cover all aspects of the parent task
- Output ONLY valid JSON, no additional text`

// DecomposeTaskPrompt renders the decomposition prompt for a parent task,
// honoring any override template from overrideDir.
func DecomposeTaskPrompt(overrideDir string, count int, title, description, priority, tags string) string {
	return fmt.Sprintf(Get(KeyDecomposeTask, overrideDir), count, title, description, priority, tags)
}
