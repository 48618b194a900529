package chat

import "strings"

// Generation parameters are fixed per invocation. Only the output allowance
// moves, and only on one signal: the prompt asking for detail.
const (
	// BaseOutputTokens bounds a normal conversational reply.
	BaseOutputTokens int32 = 200

	// DetailedOutputTokens bounds a reply when the prompt asks for detail.
	DetailedOutputTokens int32 = 400

	// detailKeyword upgrades the budget. Matched as a substring, so
	// "detailed" and "details" qualify too.
	detailKeyword = "detail"

	// DefaultTemperature balances consistency against variety.
	DefaultTemperature float32 = 0.7

	// DefaultTopK limits sampling to the 40 most likely tokens.
	DefaultTopK int32 = 40

	// DefaultTopP is the nucleus sampling cutoff.
	DefaultTopP float32 = 0.95
)

// Budget carries the generation parameters for a single model call.
type Budget struct {
	MaxOutputTokens int32
	Temperature     float32
	TopK            int32
	TopP            float32
}

// ComputeBudget derives the generation budget from the prompt text alone.
// It is pure: no clock, no I/O, no per-user state. The same prompt always
// yields the same budget.
func ComputeBudget(prompt string) Budget {
	b := Budget{
		MaxOutputTokens: BaseOutputTokens,
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
	}
	if strings.Contains(strings.ToLower(prompt), detailKeyword) {
		b.MaxOutputTokens = DetailedOutputTokens
	}
	return b
}
