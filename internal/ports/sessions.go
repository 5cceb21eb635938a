package ports

import (
	"context"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

// SessionStats is the operator-facing snapshot of the session store.
type SessionStats struct {
	ActiveSessions int
	TotalMessages  int
}

// SessionStore holds per-caller conversation history. Get has get-or-create
// semantics. Implementations must keep appends to a single session linearizable
// while allowing different sessions to be mutated fully in parallel; a single
// global lock does not satisfy this contract.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.ChatSession, error)
	Append(ctx context.Context, sessionID string, messages ...domain.ChatMessage) error
	Clear(ctx context.Context, sessionID string) error
	Stats(ctx context.Context) (SessionStats, error)
}
