package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tastebox/backend/config"
)

const llmTimeout = 60 * time.Second

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completion request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
}

// LLMClient talks to a hosted chat-completion API.
type LLMClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMClient creates an LLMClient from the application configuration.
// The API key may also be supplied through DEEPSEEK_API_KEY_FILE.
func NewLLMClient(cfg *config.Config) (*LLMClient, error) {
	apiKey := cfg.LLMAPIKey
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	return &LLMClient{
		apiKey: apiKey,
		apiURL: cfg.LLMAPIURL,
		model:  cfg.LLMModel,
		client: &http.Client{Timeout: llmTimeout},
	}, nil
}

// Complete sends a system plus user message and returns the raw completion
// text unparsed. Low temperature favors deterministic extraction.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.1,
		MaxTokens:      4096,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &LLMError{Message: "failed to create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &LLMError{Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &LLMError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &LLMError{Message: fmt.Sprintf("API request failed with status %d: %s", resp.StatusCode, string(body))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", &LLMError{Message: "failed to decode response", Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", &LLMError{Message: "no completion returned"}
	}

	return result.Choices[0].Message.Content, nil
}
