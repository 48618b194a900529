package chat

import (
	"slices"

	"google.golang.org/genai"
)

// estimateTokens approximates the token count of text. Gemini averages
// roughly one token per two characters across mixed prose and CJK, and
// counting runes keeps multi-byte scripts from inflating the estimate.
// Non-empty text always costs at least one token.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len([]rune(text)) / 2
	if n < 1 {
		n = 1
	}
	return n
}

// estimateContentTokens sums the estimate over every text part of a single
// content.
func estimateContentTokens(content *genai.Content) int {
	if content == nil {
		return 0
	}
	total := 0
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		total += estimateTokens(part.Text)
	}
	return total
}

// estimateTranscriptTokens sums the estimate over a whole transcript.
func estimateTranscriptTokens(contents []*genai.Content) int {
	total := 0
	for _, content := range contents {
		total += estimateContentTokens(content)
	}
	return total
}

// truncateTranscript trims contents to fit budget, dropping oldest turns
// first. Selection walks newest-first and keeps whatever still fits, so a
// single oversized turn is skipped rather than ending the walk. The kept
// turns come back in their original chronological order.
func (a *Agent) truncateTranscript(contents []*genai.Content, budget int) []*genai.Content {
	if len(contents) == 0 {
		return contents
	}
	total := estimateTranscriptTokens(contents)
	if total <= budget {
		return contents
	}

	kept := make([]*genai.Content, 0, len(contents))
	used := 0
	for i := len(contents) - 1; i >= 0; i-- {
		cost := estimateContentTokens(contents[i])
		if used+cost > budget {
			continue
		}
		used += cost
		kept = append(kept, contents[i])
	}
	slices.Reverse(kept)

	a.logger.Debug("transcript truncated",
		"turns", len(contents),
		"kept", len(kept),
		"estimatedTokens", total,
		"budget", budget)

	return kept
}
