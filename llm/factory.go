package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/trusty-cli/trusty/types"
)

// NewProvider returns a Provider instance for the configured backend.
func NewProvider(config *types.LLMConfig) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("LLM configuration cannot be nil")
	}

	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI provider selected but API key is missing (set llm.apiKey or TRUSTY_LLM_APIKEY)")
		}
		timeout := 60 * time.Second
		if config.RequestTimeoutSeconds > 0 {
			timeout = time.Duration(config.RequestTimeoutSeconds) * time.Second
		}
		p := NewOpenAIProvider(config.APIKey, config.ModelName, timeout, config.Debug)
		p.SetPromptDir(config.PromptDir)
		p.SetSampling(config.MaxTokens, config.Temperature)
		return p, nil
	case "stub":
		return NewStubProvider(), nil
	case "":
		return nil, fmt.Errorf("no LLM provider specified in configuration")
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
