package service

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompleter talks to any OpenAI‑compatible endpoint: OpenAI itself or a
// local server (LM Studio, Ollama, llama.cpp) exposing /v1.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter returns a completer for baseURL. Local servers usually
// ignore apiKey, so it may be empty.
func NewOpenAICompleter(baseURL, apiKey, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Ping lists the served models; a server that answers is considered alive.
func (c *OpenAICompleter) Ping(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
	}
	return nil
}

// Complete runs one chat completion with prompt as the user message.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrCompletionUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
