package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

const enhancerTemplate = `You are a video generation expert. Enhance the following video prompt for better results.

Original prompt: %s
Style: %s

Enhanced prompt (be specific, descriptive, and cinematic):`

// PromptEnhancer rewrites a raw video prompt into a richer one
type PromptEnhancer interface {
	Enhance(ctx context.Context, prompt, style string) (string, error)
}

// OpenAIClient enhances prompts through the chat completions API
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultOpenAIBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enhance rewrites the prompt for the given style
func (c *OpenAIClient) Enhance(ctx context.Context, prompt, style string) (string, error) {
	if style == "" {
		style = "cinematic"
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(enhancerTemplate, prompt, style)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from completions API", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completions API returned no choices")
	}

	enhanced := strings.TrimSpace(out.Choices[0].Message.Content)
	if enhanced == "" {
		return "", fmt.Errorf("completions API returned an empty prompt")
	}

	return enhanced, nil
}

// Passthrough returns prompts unchanged. It is wired in when no API key is
// configured, so generation still works in development environments.
type Passthrough struct{}

// Enhance returns the prompt as-is
func (Passthrough) Enhance(ctx context.Context, prompt, style string) (string, error) {
	return prompt, nil
}
