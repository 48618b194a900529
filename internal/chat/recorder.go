package chat

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Recorder persists conversation turns best-effort. A failed append is
// logged and swallowed so persistence trouble degrades history, never the
// reply itself.
type Recorder struct {
	store  TurnStore
	logger *slog.Logger
}

// NewRecorder creates a recorder over store. A nil logger falls back to
// slog.Default.
func NewRecorder(store TurnStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Record appends one turn and returns its ID, or uuid.Nil when the append
// failed. Callers use the ID to exclude the in-flight prompt at projection
// time; Nil means nothing was stored, so there is nothing to exclude.
func (r *Recorder) Record(ctx context.Context, uid, role, text string) uuid.UUID {
	turn, err := r.store.Append(ctx, uid, role, text)
	if err != nil {
		r.logger.Warn("recording turn", "uid", uid, "role", role, "error", err)
		return uuid.Nil
	}
	return turn.ID
}
