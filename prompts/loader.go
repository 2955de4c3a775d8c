package prompts

import (
	"os"
	"path/filepath"
	"strings"
)

// PromptKey identifies an overridable prompt.
type PromptKey string

const (
	// KeyGenerateTask is the single-task generation system prompt.
	KeyGenerateTask PromptKey = "GenerateTask"
	// KeyDecomposeTask is the decomposition template. Overrides must keep
	// the same five format verbs (count, title, description, priority, tags).
	KeyDecomposeTask PromptKey = "DecomposeTask"
)

var promptFiles = map[PromptKey]string{
	KeyGenerateTask:  "generate_task_prompt.txt",
	KeyDecomposeTask: "decompose_task_prompt.txt",
}

var promptDefaults = map[PromptKey]string{
	KeyGenerateTask:  GenerateTaskSystemPrompt,
	KeyDecomposeTask: decomposeTemplate,
}

// Get returns the prompt for key, preferring a non-empty override file in
// overrideDir (e.g. .trusty/prompts/). Unreadable or empty override files
// fall back to the built-in default.
func Get(key PromptKey, overrideDir string) string {
	def := promptDefaults[key]
	if overrideDir == "" {
		return def
	}
	name, ok := promptFiles[key]
	if !ok {
		return def
	}
	data, err := os.ReadFile(filepath.Join(overrideDir, name))
	if err != nil {
		return def
	}
	if content := strings.TrimSpace(string(data)); content != "" {
		return content
	}
	return def
}
