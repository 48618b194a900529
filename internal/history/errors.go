package history

import "errors"

// Sentinel errors for store operations.
// These errors are part of the Store's public API and should be checked using errors.Is().
//
// Example:
//
//	turn, err := store.Append(ctx, uid, role, text)
//	if errors.Is(err, history.ErrEmptyUID) {
//	    // Reject the request before it reaches the database
//	}
var (
	// ErrEmptyUID indicates the caller passed an empty user identifier.
	ErrEmptyUID = errors.New("empty uid")

	// ErrInvalidRole indicates the role is not one of the storable values.
	ErrInvalidRole = errors.New("invalid role")
)
