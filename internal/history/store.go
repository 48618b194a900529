package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store manages the turn log with a PostgreSQL backend.
//
// Store is safe for concurrent use by multiple goroutines; all state lives
// in the database and the pool handles connection concurrency.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a new Store instance.
//
// Parameters:
//   - pool: PostgreSQL connection pool (can be nil for tests that only hit
//     the validation paths)
//   - logger: Logger for debugging (nil = use default)
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		pool:   pool,
		logger: logger,
	}
}

const appendTurnSQL = `
INSERT INTO turns (id, uid, role, content)
VALUES ($1, $2, $3, $4)
RETURNING seq, created_at`

// Append inserts one turn at the end of the uid's log and returns the
// stored turn with its database-assigned seq and created_at.
//
// The turn ID is generated here (not in the database) so callers can
// reference the new turn without a second round trip. Empty text is
// accepted; whether blank input is meaningful is an upstream policy.
func (s *Store) Append(ctx context.Context, uid, role, text string) (*Turn, error) {
	if uid == "" {
		return nil, ErrEmptyUID
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	turn := Turn{
		ID:   uuid.New(),
		UID:  uid,
		Role: role,
		Text: text,
	}

	err := s.pool.QueryRow(ctx, appendTurnSQL, turn.ID, uid, role, text).
		Scan(&turn.Seq, &turn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appending turn: %w", err)
	}

	s.logger.Debug("turn appended",
		"uid", uid,
		"role", role,
		"turn_id", turn.ID,
		"seq", turn.Seq)

	return &turn, nil
}

const listTurnsSQL = `
SELECT id, uid, role, content, seq, created_at
FROM turns
WHERE uid = $1
ORDER BY created_at, seq`

// ListOrdered returns every turn for uid, ascending by (created_at, seq).
// An unknown uid yields an empty slice, not an error.
func (s *Store) ListOrdered(ctx context.Context, uid string) ([]Turn, error) {
	if uid == "" {
		return nil, ErrEmptyUID
	}

	rows, err := s.pool.Query(ctx, listTurnsSQL, uid)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.UID, &t.Role, &t.Text, &t.Seq, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading turns: %w", err)
	}

	return turns, nil
}

// Clear deletes the uid's entire thread and returns the number of turns
// removed. Clearing an unknown uid removes nothing and is not an error.
func (s *Store) Clear(ctx context.Context, uid string) (int64, error) {
	if uid == "" {
		return 0, ErrEmptyUID
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM turns WHERE uid = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("clearing turns: %w", err)
	}

	deleted := tag.RowsAffected()
	if deleted > 0 {
		s.logger.Debug("thread cleared", "uid", uid, "deleted", deleted)
	}

	return deleted, nil
}

// Stats returns the total number of stored turns and distinct users.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx, `SELECT count(*), count(DISTINCT uid) FROM turns`).
		Scan(&st.Turns, &st.Users)
	if err != nil {
		return Stats{}, fmt.Errorf("reading stats: %w", err)
	}
	return st, nil
}
