package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/parley0/parley/internal/chat"
	"github.com/parley0/parley/internal/config"
)

func TestAppClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		app     *App
		wantErr bool
	}{
		{
			name: "empty app",
			app:  &App{},
		},
		{
			name: "nil logger does not panic",
			app:  &App{logger: nil},
		},
		{
			name: "tracing shutdown succeeds",
			app: &App{
				logger:          slog.New(slog.DiscardHandler),
				tracingShutdown: func(context.Context) error { return nil },
			},
		},
		{
			name: "tracing shutdown failure is reported",
			app: &App{
				logger:          slog.New(slog.DiscardHandler),
				tracingShutdown: func(context.Context) error { return errors.New("exporter unreachable") },
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.app.Close()
			if tt.wantErr && err == nil {
				t.Fatal("Close() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Close() = %v, want nil", err)
			}
		})
	}
}

func TestAppClose_ShutdownReceivesDeadline(t *testing.T) {
	t.Parallel()

	var sawDeadline bool
	a := &App{
		logger: slog.New(slog.DiscardHandler),
		tracingShutdown: func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		},
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if !sawDeadline {
		t.Error("tracing shutdown context has no deadline; teardown could hang")
	}
}

func TestNewModel_DemoWhenUnconfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		apiKey string
	}{
		{name: "empty key", apiKey: ""},
		{name: "placeholder key", apiKey: chat.PlaceholderAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{GeminiAPIKey: tt.apiKey, ModelName: "gemini-2.5-flash"}
			model, err := newModel(context.Background(), cfg, slog.New(slog.DiscardHandler))
			if err != nil {
				t.Fatalf("newModel() error = %v, want nil", err)
			}
			if model != nil {
				t.Errorf("newModel() = %T, want nil model for demo mode", model)
			}
		})
	}
}

func TestNewModel_ConfiguredKey(t *testing.T) {
	t.Parallel()

	// Client construction does not dial; a fake key is fine here.
	cfg := &config.Config{GeminiAPIKey: "test-key-not-real", ModelName: "gemini-2.5-flash"}
	model, err := newModel(context.Background(), cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("newModel() error = %v, want nil", err)
	}
	if model == nil {
		t.Fatal("newModel() = nil, want a client when the key is configured")
	}
}

func TestNewModel_MissingModelName(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{GeminiAPIKey: "test-key-not-real"}
	if _, err := newModel(context.Background(), cfg, slog.New(slog.DiscardHandler)); err == nil {
		t.Fatal("newModel() = nil error, want failure for empty model name")
	}
}
