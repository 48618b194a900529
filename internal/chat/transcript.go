package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/parley0/parley/internal/history"
)

// TurnStore is the persistence surface the chat core consumes. Defined on
// the consumer side so tests can substitute a fake; *history.Store satisfies
// it.
type TurnStore interface {
	Append(ctx context.Context, uid, role, text string) (*history.Turn, error)
	ListOrdered(ctx context.Context, uid string) ([]history.Turn, error)
}

var _ TurnStore = (*history.Store)(nil)

// Projector rebuilds the model-facing transcript from the stored thread.
// It holds no cache: every projection re-reads the full thread, so restarts
// and concurrent writers never leave it stale.
type Projector struct {
	store TurnStore
}

// NewProjector creates a projector over store.
func NewProjector(store TurnStore) *Projector {
	return &Projector{store: store}
}

// Project returns uid's thread as genai contents in storage order, with
// stored roles mapped onto the wire roles Gemini expects. Assistant turns
// become model turns; the two-role alternation is preserved as stored.
//
// exclude names the just-persisted in-flight prompt by turn ID so the
// prompt is not sent twice, once as history and once as the new message.
// Pass uuid.Nil to exclude nothing, which is correct when the prompt was
// never persisted.
//
// An empty thread projects to an empty transcript, not an error.
func (p *Projector) Project(ctx context.Context, uid string, exclude uuid.UUID) ([]*genai.Content, error) {
	turns, err := p.store.ListOrdered(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		if exclude != uuid.Nil && turn.ID == exclude {
			continue
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, wireRole(turn.Role)))
	}
	return contents, nil
}

// wireRole maps a stored role onto the genai wire role.
func wireRole(stored string) genai.Role {
	if stored == history.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
