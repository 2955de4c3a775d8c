package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Prune   PruneConfig   `mapstructure:"prune" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	TasksDir string `mapstructure:"tasksDir" validate:"required"`
}

// DataConfig holds task data storage configuration.
type DataConfig struct {
	File        string `mapstructure:"file" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
	HistoryFile string `mapstructure:"historyFile" validate:"required"`
}

// PruneConfig holds staleness and backoff tunables for the prune advisor.
// Durations are parsed from strings like "14d", "24h", "30d" (days are
// accepted in addition to time.ParseDuration units).
type PruneConfig struct {
	StaleAfter   string `mapstructure:"staleAfter" validate:"required"`
	BaseInterval string `mapstructure:"baseInterval" validate:"required"`
	MaxInterval  string `mapstructure:"maxInterval" validate:"required"`
}

// LLMConfig holds configuration for text-generation integration.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"omitempty,oneof=openai stub"`
	ModelName   string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey      string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	ProjectID   string  `mapstructure:"projectId" validate:"omitempty,min=1"`
	MaxTokens   int     `mapstructure:"maxTokens" validate:"omitempty,min=1"`
	Temperature float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for generation calls.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// PromptDir optionally points at a directory of prompt override files.
	PromptDir string `mapstructure:"promptDir"`
	// Debug enables extra request/response logging within the provider.
	Debug bool `mapstructure:"debug"`
}
