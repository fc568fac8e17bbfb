package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingAPIKey means no completion key is configured. No request
	// is sent in that case.
	ErrMissingAPIKey = errors.New("completion API key is not configured")
	// ErrUpstream wraps failures returned by the completion endpoint.
	ErrUpstream = errors.New("completion API request failed")
)

const (
	temperature = 0.7
	maxTokens   = 2000
)

type Client struct {
	client *openai.Client
	model  string
	hasKey bool
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		hasKey: apiKey != "",
	}
}

const systemPrompt = `You are a senior technical analyst who writes in-depth, accurate evaluations of open-source projects.`

const explainTemplate = `Write a detailed introduction to the GitHub repository "%s" covering:
1. Overview: what the project does and which problem it solves
2. Tech stack: languages, frameworks and libraries it uses
3. Core features: the main capabilities and what sets them apart
4. Usage: how to install, configure and use it
5. Technical value: what is novel about it and what it contributes to its field
6. Practicality: where it helps in real-world work and its advantages
7. Summary and advice: recommendations for developers

Known facts:
- Description: %s
- Primary language: %s
- Domain: %s

Write clearly and professionally for a developer audience.`

// Prompt builds the user message for req.
func Prompt(req models.ExplanationRequest) string {
	description := req.Description
	if description == "" {
		description = "No description provided"
	}
	language := req.Language
	if language == "" {
		language = "Unknown"
	}
	return fmt.Sprintf(explainTemplate, req.Repo, description, language, req.Domain)
}

// Explain asks the completion endpoint for a long-form explanation of one
// repo and returns the model's text verbatim.
func (c *Client) Explain(ctx context.Context, req models.ExplanationRequest) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(req)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: explaining %s: %w", ErrUpstream, req.Repo, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned for %s", ErrUpstream, req.Repo)
	}

	return resp.Choices[0].Message.Content, nil
}
