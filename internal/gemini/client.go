// Package gemini wraps the Google Gen AI SDK behind the narrow surface the
// chat core consumes.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/parley0/parley/internal/chat"
)

// Config contains the parameters for the Gemini client.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model is the bare model name, e.g. "gemini-2.5-flash". Required.
	Model string

	// Logger is required.
	Logger *slog.Logger
}

// Client calls the Gemini API. It implements chat.ModelClient and performs
// exactly one API call per Generate; retry policy belongs to callers.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ chat.ModelClient = (*Client)(nil)

// New creates a Gemini client from cfg.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model name is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	cfg.Logger.Info("gemini client initialized", "model", cfg.Model)

	return &Client{
		client: client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

// Generate performs one model call and returns the reply text. The SDK
// error is wrapped, not replaced, so callers can still reach the typed
// APIError with errors.As.
func (c *Client) Generate(ctx context.Context, req chat.GenerateRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       ptrFloat(req.Budget.Temperature),
		TopK:              ptrFloat(float32(req.Budget.TopK)),
		TopP:              ptrFloat(req.Budget.TopP),
		MaxOutputTokens:   req.Budget.MaxOutputTokens,
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	contents = append(contents, req.History...)
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := extractText(resp)
	c.logger.Debug("model call completed",
		"model", c.model,
		"historyTurns", len(req.History),
		"replyChars", len(text))

	return text, nil
}

// extractText returns the first text part of the first candidate, or ""
// when the response carries no text.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}

func ptrFloat(f float32) *float32 { return &f }
