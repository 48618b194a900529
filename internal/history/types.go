// Package history persists conversation turns in PostgreSQL.
//
// The store is an append-only log per uid: turns are inserted once and
// never updated. Reads return the full thread in insertion order, which
// the chat layer projects into a model transcript. All operations return
// explicit errors; deciding whether a failure is fatal is the caller's
// job (the recorder logs and continues, the API surfaces a 500).
package history

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored per turn. The model-facing role mapping
// (assistant → model) happens at projection time, not here.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ValidRole reports whether role is one of the storable role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// Turn is one stored conversation message.
//
// Seq is assigned by PostgreSQL (identity column) and disambiguates turns
// that share a created_at timestamp, so ordering is stable in insertion
// order even under clock-resolution collisions.
type Turn struct {
	ID        uuid.UUID
	UID       string
	Role      string
	Text      string
	Seq       int64
	CreatedAt time.Time
}

// Stats summarizes the stored corpus across all users.
type Stats struct {
	Turns int64 `json:"turns"`
	Users int64 `json:"users"`
}
