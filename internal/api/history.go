package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/parley0/parley/internal/history"
)

// historyStore is the slice of the conversation store the history
// endpoints use. *history.Store satisfies it.
type historyStore interface {
	ListOrdered(ctx context.Context, uid string) ([]history.Turn, error)
	Clear(ctx context.Context, uid string) (int64, error)
	Stats(ctx context.Context) (history.Stats, error)
}

var _ historyStore = (*history.Store)(nil)

// historyHandler serves thread inspection and maintenance endpoints.
type historyHandler struct {
	store  historyStore
	logger *slog.Logger
}

// turnItem is the JSON representation of a turn in list responses.
type turnItem struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Seq       int64  `json:"seq"`
	CreatedAt string `json:"createdAt"`
}

// list handles GET /api/v1/history/{uid}. It returns the uid's thread, oldest first.
func (h *historyHandler) list(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(w, http.StatusBadRequest, "missing_uid", "uid is required", h.logger)
		return
	}

	turns, err := h.store.ListOrdered(r.Context(), uid)
	if err != nil {
		h.logger.Error("listing history", "error", err, "uid", uid)
		WriteError(w, http.StatusInternalServerError, "history_failed", "failed to load history", h.logger)
		return
	}

	items := make([]turnItem, len(turns))
	for i, turn := range turns {
		items[i] = turnItem{
			ID:        turn.ID.String(),
			Role:      turn.Role,
			Text:      turn.Text,
			Seq:       turn.Seq,
			CreatedAt: turn.CreatedAt.Format(time.RFC3339),
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"uid":   uid,
		"turns": items,
		"total": len(items),
	}, h.logger)
}

// clear handles DELETE /api/v1/history/{uid}. It deletes the uid's thread.
func (h *historyHandler) clear(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(w, http.StatusBadRequest, "missing_uid", "uid is required", h.logger)
		return
	}

	deleted, err := h.store.Clear(r.Context(), uid)
	if err != nil {
		h.logger.Error("clearing history", "error", err, "uid", uid)
		WriteError(w, http.StatusInternalServerError, "history_failed", "failed to clear history", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"uid":     uid,
		"deleted": deleted,
	}, h.logger)
}

// stats handles GET /api/v1/stats. It reports corpus-wide turn and user counts.
func (h *historyHandler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error("reading stats", "error", err)
		WriteError(w, http.StatusInternalServerError, "stats_failed", "failed to read stats", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, st, h.logger)
}
