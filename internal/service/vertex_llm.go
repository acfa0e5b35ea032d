package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// VertexCompleter implements Completer with a Gemini model on Vertex AI.
type VertexCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexCompleter creates a Vertex AI client. credentialsFile may be empty
// to use Application Default Credentials.
func NewVertexCompleter(ctx context.Context, projectID, location, modelName, credentialsFile string) (*VertexCompleter, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertex: GCP_PROJECT_ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)

	return &VertexCompleter{
		client: client,
		model:  model,
	}, nil
}

// Ping counts the tokens of a one‑word text, the cheapest authenticated call.
func (v *VertexCompleter) Ping(ctx context.Context) error {
	if _, err := v.model.CountTokens(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
	}
	return nil
}

// Complete generates a response for prompt and joins its text parts.
func (v *VertexCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no response generated", ErrCompletionUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: response had no text", ErrCompletionUnavailable)
	}
	return sb.String(), nil
}

// Close closes the Vertex AI client.
func (v *VertexCompleter) Close() error {
	return v.client.Close()
}
