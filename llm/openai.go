package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/trusty-cli/trusty/prompts"
	"github.com/trusty-cli/trusty/types"
)

const openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Provider against the OpenAI chat completions
// API with JSON-object response mode.
type OpenAIProvider struct {
	apiKey      string
	model       string
	client      *http.Client
	promptDir   string
	maxTokens   int
	temperature float64
	debug       bool
}

// NewOpenAIProvider creates a provider with a bounded request timeout.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration, debug bool) *OpenAIProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
		debug:  debug,
	}
}

// SetPromptDir points the provider at a directory of prompt override files.
func (p *OpenAIProvider) SetPromptDir(dir string) { p.promptDir = dir }

// SetSampling overrides the request token limit and temperature. Zero values
// leave the API defaults in place.
func (p *OpenAIProvider) SetSampling(maxTokens int, temperature float64) {
	p.maxTokens = maxTokens
	p.temperature = temperature
}

type openAIRequest struct {
	Model          string            `json:"model"`
	Messages       []openAIMessage   `json:"messages"`
	Temperature    float64           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat *openAIRespFormat `json:"response_format,omitempty"`
}

type openAIRespFormat struct {
	Type string `json:"type"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

// GenerateTask drafts a single task from a free-form prompt.
func (p *OpenAIProvider) GenerateTask(ctx context.Context, prompt string) (GeneratedTask, error) {
	system := prompts.Get(prompts.KeyGenerateTask, p.promptDir)
	raw, err := p.complete(ctx, system, prompt)
	if err != nil {
		return GeneratedTask{}, err
	}
	var task GeneratedTask
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &task); err != nil {
		return GeneratedTask{}, &types.GenerationError{Kind: "unavailable",
			Err: fmt.Errorf("response was not valid task JSON: %w", err)}
	}
	if task.Title == "" {
		return GeneratedTask{}, &types.GenerationError{Kind: "unavailable",
			Err: errors.New("response JSON missing title")}
	}
	return task, nil
}

type decomposeResponse struct {
	Subtasks []GeneratedTask `json:"subtasks"`
}

// DecomposeTask proposes count subtasks for the given parent.
func (p *OpenAIProvider) DecomposeTask(ctx context.Context, parent ParentContext, count int) ([]GeneratedTask, error) {
	system := prompts.DecomposeTaskPrompt(p.promptDir, count,
		parent.Title, parent.Description, parent.Priority, strings.Join(parent.Tags, ", "))
	raw, err := p.complete(ctx, system, "Decompose the parent task described above.")
	if err != nil {
		return nil, err
	}
	var resp decomposeResponse
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &resp); err != nil {
		return nil, &types.GenerationError{Kind: "unavailable",
			Err: fmt.Errorf("response was not valid subtask JSON: %w", err)}
	}
	if len(resp.Subtasks) == 0 {
		return nil, &types.GenerationError{Kind: "unavailable",
			Err: errors.New("response contained no subtasks")}
	}
	return resp.Subtasks, nil
}

// complete performs one chat-completion round trip and returns the raw
// message content. Transport failures are classified as timeout or
// unavailable GenerationErrors.
func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	payload := openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    p.temperature,
		MaxTokens:      p.maxTokens,
		ResponseFormat: &openAIRespFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &types.GenerationError{Kind: "unavailable", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", &types.GenerationError{Kind: "unavailable", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	if p.debug {
		fmt.Fprintf(os.Stderr, "[llm] POST %s model=%s bytes=%d\n", openAIChatCompletionsURL, p.model, len(body))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		kind := "unavailable"
		wrapped := types.ErrGenerationUnavailable
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			kind = "timeout"
			wrapped = types.ErrGenerationTimeout
		}
		return "", &types.GenerationError{Kind: kind, Err: fmt.Errorf("%w: %v", wrapped, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &types.GenerationError{Kind: "unavailable", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &types.GenerationError{Kind: "unavailable",
			Err: fmt.Errorf("%w: API returned %d: %s", types.ErrGenerationUnavailable, resp.StatusCode, truncate(string(respBody), 200))}
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &types.GenerationError{Kind: "unavailable", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &types.GenerationError{Kind: "unavailable", Err: errors.New("response contained no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}

// ExtractJSON strips a markdown code fence from a model response, if
// present, and returns the inner JSON.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.LastIndex(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
