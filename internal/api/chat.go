package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/parley0/parley/internal/chat"
	"github.com/parley0/parley/internal/history"
)

// maxChatBodyBytes limits request size to 1MB.
const maxChatBodyBytes = 1 << 20

// chatHandler serves the relay endpoint: persist the question, invoke the
// agent, persist the answer, respond.
type chatHandler struct {
	agent    *chat.Agent
	recorder *chat.Recorder
	logger   *slog.Logger
}

// chatRequest is the inbound payload. Both fields are required.
type chatRequest struct {
	Prompt string `json:"prompt"`
	UID    string `json:"uid"`
}

// chatResponse is the outbound payload. Its flat shape (no data envelope)
// is fixed by the chat client contract: classified provider failures still
// ship success=true with a safe reply, plus the failure slug in error.
type chatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
	Demo    bool   `json:"isDemo"`
	Error   string `json:"error,omitempty"`
}

// send handles POST /api/v1/chat.
//
// Accepted requests record exactly two turns: the user turn before the
// agent runs, the assistant turn after. Rejected requests record nothing.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", h.logger)
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	uid := strings.TrimSpace(req.UID)
	if prompt == "" || uid == "" {
		WriteError(w, http.StatusBadRequest, "missing_input", "prompt and uid are required", h.logger)
		return
	}

	ctx := r.Context()

	// The question is persisted before the model runs, so a crash
	// mid-request still leaves it in the thread. Record returns uuid.Nil
	// on failure, which tells the agent there is nothing to exclude.
	promptTurn := h.recorder.Record(ctx, uid, history.RoleUser, prompt)

	result := h.agent.Invoke(ctx, uid, prompt, promptTurn)

	// Fallback replies are recorded like any other assistant turn.
	h.recorder.Record(ctx, uid, history.RoleAssistant, result.Reply)

	resp := chatResponse{
		Success: true,
		Reply:   result.Reply,
		Demo:    result.Demo,
	}
	if result.Kind != chat.KindNone {
		resp.Error = result.Kind.String()
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}
