// Package chat implements the conversation core: projecting stored history
// into a model transcript, budgeting the reply, invoking Gemini once per
// request, and classifying provider failures into safe user-facing replies.
//
// The package is deliberately total on the request path. Invoke returns a
// Result for every input, whether the reply came from the model, from demo
// mode, or from a classified failure, so the HTTP layer always has
// something coherent to send and record.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	// PlaceholderAPIKey is the sample value shipped in config templates.
	// A key equal to it is treated the same as no key at all.
	PlaceholderAPIKey = "your_api_key_here"

	// DefaultMaxHistoryTokens caps the projected transcript when the
	// configuration does not say otherwise. Matches
	// config.DefaultMaxHistoryTokens.
	DefaultMaxHistoryTokens = 4096

	// emptyReplyMessage stands in when the model returns no usable text.
	emptyReplyMessage = "I apologize, but I couldn't generate a response. Please try rephrasing your question."
)

// systemPersona is the fixed system instruction sent with every model call.
// The length guidance mirrors the output token budget: short conversational
// answers by default, extended only when the user asks for detail.
const systemPersona = `You are a friendly, helpful assistant.
Keep answers short and conversational: two or three sentences, around 150 tokens.
When the user asks for detail, you may expand to roughly 400 tokens.
Use plain, simple language and avoid jargon.
When listing things, prefer bullet points.`

// Credentials carries the resolved Gemini credential, injected at
// construction. The agent never consults the environment at request time.
type Credentials struct {
	APIKey string
}

// Configured reports whether a usable credential is present. An empty key
// and the placeholder both mean demo mode.
func (c Credentials) Configured() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

// GenerateRequest is a single model invocation: the system persona, the
// projected history, the new prompt, and the generation budget.
type GenerateRequest struct {
	System  string
	History []*genai.Content
	Prompt  string
	Budget  Budget
}

// ModelClient is the minimal surface the agent needs from the Gemini SDK.
// Defined on the consumer side so tests can script failures without a
// network. *gemini.Client satisfies it.
type ModelClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Result is the outcome of one invocation.
type Result struct {
	// Reply is the text to show the user and record as the assistant
	// turn. Never empty.
	Reply string

	// Demo is true when the reply is a canned demo response.
	Demo bool

	// Kind is KindNone for clean replies and names the failure class
	// when Reply is a fallback.
	Kind Kind
}

// Config contains all required parameters for the chat agent.
type Config struct {
	// Store provides the persisted conversation log. Required.
	Store TurnStore

	// Model invokes Gemini. Required when Creds are configured; ignored
	// in demo mode.
	Model ModelClient

	// Creds is the Gemini credential. An unconfigured credential puts
	// the agent in demo mode.
	Creds Credentials

	// Logger is required.
	Logger *slog.Logger

	// MaxHistoryTokens caps the projected transcript. Zero or negative
	// means DefaultMaxHistoryTokens.
	MaxHistoryTokens int
}

// validate checks that required dependencies are present.
func (c Config) validate() error {
	if c.Store == nil {
		return errors.New("turn store is required")
	}
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Creds.Configured() && c.Model == nil {
		return errors.New("model client is required when credentials are configured")
	}
	return nil
}

// Agent orchestrates one conversation turn: project, budget, invoke,
// classify. Safe for concurrent use; all fields are read-only after New.
type Agent struct {
	// Immutable configuration (captured at construction)
	creds            Credentials
	maxHistoryTokens int

	// Dependencies (read-only after construction)
	model     ModelClient
	projector *Projector
	logger    *slog.Logger
	tracer    trace.Tracer
}

// New creates a chat agent from cfg.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxHistoryTokens := cfg.MaxHistoryTokens
	if maxHistoryTokens <= 0 {
		maxHistoryTokens = DefaultMaxHistoryTokens
	}

	a := &Agent{
		creds:            cfg.Creds,
		maxHistoryTokens: maxHistoryTokens,
		model:            cfg.Model,
		projector:        NewProjector(cfg.Store),
		logger:           cfg.Logger,
		tracer:           otel.Tracer("parley/chat"),
	}

	if !a.creds.Configured() {
		a.logger.Warn("no Gemini API key configured, serving canned demo replies")
	}

	a.logger.Info("chat agent initialized",
		"demo", !a.creds.Configured(),
		"maxHistoryTokens", a.maxHistoryTokens)

	return a, nil
}

// Demo reports whether the agent runs without a credential.
func (a *Agent) Demo() bool {
	return !a.creds.Configured()
}

// Invoke runs one conversation turn for uid. It is total: missing
// credentials, store failures, and provider failures all resolve into a
// Result rather than an error, so the caller always has a reply to show
// and record.
//
// promptTurn names the just-persisted user turn so projection can exclude
// it; pass uuid.Nil when the prompt was never persisted. Invoke makes at
// most one model call and never retries.
func (a *Agent) Invoke(ctx context.Context, uid, prompt string, promptTurn uuid.UUID) *Result {
	ctx, span := a.tracer.Start(ctx, "chat.invoke")
	defer span.End()

	// Demo gate comes before any I/O so demo mode works without a
	// reachable model endpoint.
	if !a.creds.Configured() {
		span.SetAttributes(attribute.Bool("chat.demo", true))
		a.logger.Debug("demo reply", "uid", uid)
		return &Result{Reply: demoReply(prompt), Demo: true}
	}

	transcript, err := a.projector.Project(ctx, uid, promptTurn)
	if err != nil {
		return a.degrade(span, uid, "projecting history", err)
	}
	transcript = a.truncateTranscript(transcript, a.maxHistoryTokens)

	budget := ComputeBudget(prompt)
	span.SetAttributes(
		attribute.Int("chat.history_turns", len(transcript)),
		attribute.Int("chat.max_output_tokens", int(budget.MaxOutputTokens)),
	)

	text, err := a.model.Generate(ctx, GenerateRequest{
		System:  systemPersona,
		History: transcript,
		Prompt:  prompt,
		Budget:  budget,
	})
	if err != nil {
		return a.degrade(span, uid, "generating reply", err)
	}

	if strings.TrimSpace(text) == "" {
		a.logger.Warn("model returned empty response", "uid", uid)
		text = emptyReplyMessage
	}

	return &Result{Reply: text}
}

// degrade classifies err and wraps it into a fallback reply so the
// conversation keeps flowing instead of surfacing a transport error.
func (a *Agent) degrade(span trace.Span, uid, operation string, err error) *Result {
	c := Classify(err)
	a.logger.Warn("invocation degraded to fallback reply",
		"uid", uid,
		"operation", operation,
		"kind", c.Kind.String(),
		"error", err)
	span.RecordError(err)
	span.SetAttributes(attribute.String("chat.failure_kind", c.Kind.String()))
	return &Result{Reply: fallbackReply(c), Kind: c.Kind}
}

// demoReply echoes the prompt and tells the operator how to enable real
// replies. Deterministic: no clock, no randomness, no network.
func demoReply(prompt string) string {
	return fmt.Sprintf("[demo] You said: %s\n\nNo Gemini API key is configured, so this is a canned echo. Set GEMINI_API_KEY and restart the server to enable real replies.", prompt)
}

// fallbackReply renders a classification as the assistant's reply. The
// unknown branch skips the prefix because its message already reads
// "a technical issue occurred".
func fallbackReply(c Classification) string {
	if c.Kind == KindUnknown {
		return fmt.Sprintf("Sorry, %s. Please try again.", c.UserMessage)
	}
	return fmt.Sprintf("Sorry, I ran into a technical issue: %s. Please try again.", c.UserMessage)
}
