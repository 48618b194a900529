package gemini

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name:        "missing api key",
			cfg:         Config{Model: "gemini-2.5-flash", Logger: logger},
			errContains: "api key is required",
		},
		{
			name:        "missing model",
			cfg:         Config{APIKey: "test-api-key", Logger: logger},
			errContains: "model name is required",
		},
		{
			name:        "missing logger",
			cfg:         Config{APIKey: "test-api-key", Model: "gemini-2.5-flash"},
			errContains: "logger is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(context.Background(), tt.cfg)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("New() error = %q, want to contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestNew_ConstructsWithoutNetwork(t *testing.T) {
	t.Parallel()

	// Construction only configures the SDK; no request leaves the host.
	client, err := New(context.Background(), Config{
		APIKey: "test-api-key",
		Model:  "gemini-2.5-flash",
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.model != "gemini-2.5-flash" {
		t.Errorf("model = %q, want %q", client.model, "gemini-2.5-flash")
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	textResponse := func(texts ...string) *genai.GenerateContentResponse {
		parts := make([]*genai.Part, 0, len(texts))
		for _, text := range texts {
			parts = append(parts, genai.NewPartFromText(text))
		}
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: parts}},
			},
		}
	}

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: "",
		},
		{
			name: "single text part",
			resp: textResponse("hello from the model"),
			want: "hello from the model",
		},
		{
			name: "skips empty leading part",
			resp: textResponse("", "the actual reply"),
			want: "the actual reply",
		},
		{
			name: "content with no parts",
			resp: textResponse(),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := extractText(tt.resp); got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPtrFloat(t *testing.T) {
	t.Parallel()

	p := ptrFloat(0.7)
	if p == nil || *p != 0.7 {
		t.Errorf("ptrFloat(0.7) = %v, want pointer to 0.7", p)
	}
}
