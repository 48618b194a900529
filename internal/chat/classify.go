package chat

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Kind identifies a recognized provider failure. The zero value means no
// failure was classified.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidCredential
	KindModelUnavailable
	KindQuotaExceeded
	KindPermissionDenied
	KindUnknown
)

// String returns a stable slug suitable for logs and response payloads.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// User-facing messages for recognized failures. Deliberately free of raw
// provider text, which may carry key fragments or endpoint URLs.
const (
	msgInvalidCredential = "there's an issue with the API key; check the server configuration"
	msgModelUnavailable  = "the model configuration needs to be updated"
	msgQuotaExceeded     = "the request quota has been exceeded"
	msgPermissionDenied  = "access was denied; check permissions"
)

// Classification is the outcome of mapping a provider error onto a Kind
// plus a message safe to show the user.
type Classification struct {
	Kind Kind

	// UserMessage is safe to surface in a reply. Raw provider text only
	// appears for KindUnknown, where it is the sole diagnostic available.
	UserMessage string
}

// Classify maps a provider error onto a Classification. Structured API
// errors are matched by status code first; anything else falls back to
// substring matching in priority order, so an error mentioning both a key
// problem and a quota problem classifies as the key problem. Classify
// never retries and never panics.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Kind: KindNone}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			return Classification{Kind: KindInvalidCredential, UserMessage: msgInvalidCredential}
		case http.StatusNotFound:
			return Classification{Kind: KindModelUnavailable, UserMessage: msgModelUnavailable}
		case http.StatusTooManyRequests:
			return Classification{Kind: KindQuotaExceeded, UserMessage: msgQuotaExceeded}
		case http.StatusForbidden:
			return Classification{Kind: KindPermissionDenied, UserMessage: msgPermissionDenied}
		}
	}

	msg := err.Error()
	switch {
	case containsAny(msg, "api key", "401"):
		return Classification{Kind: KindInvalidCredential, UserMessage: msgInvalidCredential}
	case containsAny(msg, "model", "404"):
		return Classification{Kind: KindModelUnavailable, UserMessage: msgModelUnavailable}
	case containsAny(msg, "quota", "429"):
		return Classification{Kind: KindQuotaExceeded, UserMessage: msgQuotaExceeded}
	case containsAny(msg, "permission", "403"):
		return Classification{Kind: KindPermissionDenied, UserMessage: msgPermissionDenied}
	}

	return Classification{
		Kind:        KindUnknown,
		UserMessage: fmt.Sprintf("a technical issue occurred: %s", msg),
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
