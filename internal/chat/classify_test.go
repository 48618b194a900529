package chat

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{KindInvalidCredential, "invalid_credential"},
		{KindModelUnavailable, "model_unavailable"},
		{KindQuotaExceeded, "quota_exceeded"},
		{KindPermissionDenied, "permission_denied"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "nil error",
			err:      nil,
			wantKind: KindNone,
		},
		{
			name:     "api key mention",
			err:      errors.New("invalid API key provided"),
			wantKind: KindInvalidCredential,
			wantMsg:  msgInvalidCredential,
		},
		{
			name:     "401 status",
			err:      errors.New("request failed with status 401"),
			wantKind: KindInvalidCredential,
			wantMsg:  msgInvalidCredential,
		},
		{
			name:     "model mention",
			err:      errors.New("model gemini-9.9-ultra was not found"),
			wantKind: KindModelUnavailable,
			wantMsg:  msgModelUnavailable,
		},
		{
			name:     "404 status",
			err:      errors.New("endpoint returned 404"),
			wantKind: KindModelUnavailable,
			wantMsg:  msgModelUnavailable,
		},
		{
			name:     "quota mention",
			err:      errors.New("resource exhausted: quota exceeded for project"),
			wantKind: KindQuotaExceeded,
			wantMsg:  msgQuotaExceeded,
		},
		{
			name:     "429 status",
			err:      errors.New("429 Too Many Requests"),
			wantKind: KindQuotaExceeded,
			wantMsg:  msgQuotaExceeded,
		},
		{
			name:     "permission mention",
			err:      errors.New("permission denied for project"),
			wantKind: KindPermissionDenied,
			wantMsg:  msgPermissionDenied,
		},
		{
			name:     "403 status",
			err:      errors.New("HTTP 403 Forbidden"),
			wantKind: KindPermissionDenied,
			wantMsg:  msgPermissionDenied,
		},
		{
			name:     "case insensitive matching",
			err:      errors.New("QUOTA limit reached"),
			wantKind: KindQuotaExceeded,
			wantMsg:  msgQuotaExceeded,
		},
		{
			name:     "credential outranks quota",
			err:      errors.New("quota check failed: bad API key"),
			wantKind: KindInvalidCredential,
			wantMsg:  msgInvalidCredential,
		},
		{
			name:     "model outranks quota",
			err:      errors.New("model quota exceeded"),
			wantKind: KindModelUnavailable,
			wantMsg:  msgModelUnavailable,
		},
		{
			name:     "unmatched error is unknown with raw text",
			err:      errors.New("connection refused"),
			wantKind: KindUnknown,
			wantMsg:  "a technical issue occurred: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%v).Kind = %v, want %v", tt.err, got.Kind, tt.wantKind)
			}
			if got.UserMessage != tt.wantMsg {
				t.Errorf("Classify(%v).UserMessage = %q, want %q", tt.err, got.UserMessage, tt.wantMsg)
			}
		})
	}
}

func TestClassify_StructuredAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{
			name:     "401 unauthorized",
			err:      genai.APIError{Code: 401, Message: "API key not valid", Status: "UNAUTHENTICATED"},
			wantKind: KindInvalidCredential,
		},
		{
			name:     "404 not found",
			err:      genai.APIError{Code: 404, Message: "model not found", Status: "NOT_FOUND"},
			wantKind: KindModelUnavailable,
		},
		{
			name:     "429 resource exhausted",
			err:      genai.APIError{Code: 429, Message: "quota exceeded", Status: "RESOURCE_EXHAUSTED"},
			wantKind: KindQuotaExceeded,
		},
		{
			name:     "403 forbidden",
			err:      genai.APIError{Code: 403, Message: "permission denied", Status: "PERMISSION_DENIED"},
			wantKind: KindPermissionDenied,
		},
		{
			name:     "wrapped api error still matches by code",
			err:      fmt.Errorf("generating reply: %w", genai.APIError{Code: 429, Message: "quota exceeded"}),
			wantKind: KindQuotaExceeded,
		},
		{
			// The code, not the message text, decides: a 429 whose
			// message mentions the API key is still a quota failure.
			name:     "code outranks message text",
			err:      genai.APIError{Code: 429, Message: "API key over quota"},
			wantKind: KindQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%v).Kind = %v, want %v", tt.err, got.Kind, tt.wantKind)
			}
			if got.UserMessage == "" {
				t.Error("Classify() UserMessage should not be empty for a failure")
			}
		})
	}
}

func TestClassify_UnknownPreservesRawMessage(t *testing.T) {
	t.Parallel()

	err := errors.New("something nobody anticipated")
	got := Classify(err)

	if got.Kind != KindUnknown {
		t.Fatalf("Classify() Kind = %v, want %v", got.Kind, KindUnknown)
	}
	if !strings.Contains(got.UserMessage, "something nobody anticipated") {
		t.Errorf("Classify() UserMessage = %q, want raw error text preserved", got.UserMessage)
	}
}

func TestContainsAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       string
		substrs []string
		want    bool
	}{
		{
			name:    "empty string",
			s:       "",
			substrs: []string{"foo"},
			want:    false,
		},
		{
			name:    "empty substrs",
			s:       "foo bar",
			substrs: []string{},
			want:    false,
		},
		{
			name:    "contains first substr",
			s:       "foo bar baz",
			substrs: []string{"foo", "qux"},
			want:    true,
		},
		{
			name:    "contains last substr",
			s:       "foo bar baz",
			substrs: []string{"qux", "baz"},
			want:    true,
		},
		{
			name:    "case insensitive match",
			s:       "FOO BAR BAZ",
			substrs: []string{"foo"},
			want:    true,
		},
		{
			name:    "no match",
			s:       "foo bar baz",
			substrs: []string{"qux", "quux"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := containsAny(tt.s, tt.substrs...)
			if got != tt.want {
				t.Errorf("containsAny(%q, %v) = %v, want %v", tt.s, tt.substrs, got, tt.want)
			}
		})
	}
}
