package history

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestValidRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role string
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, true},
		{"model", false},
		{"system", false},
		{"User", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.want {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

// Validation failures must short-circuit before any database access, so a
// nil pool is safe here.
func TestAppendValidation(t *testing.T) {
	t.Parallel()

	store := New(nil, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	t.Run("empty uid", func(t *testing.T) {
		t.Parallel()
		_, err := store.Append(ctx, "", RoleUser, "hello")
		if !errors.Is(err, ErrEmptyUID) {
			t.Errorf("Append() = %v, want ErrEmptyUID", err)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		t.Parallel()
		_, err := store.Append(ctx, "user-1", "narrator", "hello")
		if !errors.Is(err, ErrInvalidRole) {
			t.Errorf("Append() = %v, want ErrInvalidRole", err)
		}
	})
}

func TestListOrderedValidation(t *testing.T) {
	t.Parallel()

	store := New(nil, slog.New(slog.DiscardHandler))

	_, err := store.ListOrdered(context.Background(), "")
	if !errors.Is(err, ErrEmptyUID) {
		t.Errorf("ListOrdered() = %v, want ErrEmptyUID", err)
	}
}

func TestClearValidation(t *testing.T) {
	t.Parallel()

	store := New(nil, slog.New(slog.DiscardHandler))

	_, err := store.Clear(context.Background(), "")
	if !errors.Is(err, ErrEmptyUID) {
		t.Errorf("Clear() = %v, want ErrEmptyUID", err)
	}
}

func TestNewDefaultsLogger(t *testing.T) {
	t.Parallel()

	store := New(nil, nil)
	if store.logger == nil {
		t.Error("New() should fall back to the default logger")
	}
}
