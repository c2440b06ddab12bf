package ports

import (
	"context"

	"github.com/jngu/ngubot/internal/domain"
)

// Completer is the completion-service collaborator. Complete submits the
// assembled turn sequence and returns the raw model text. Implementations
// return domain.ErrNotConfigured without issuing a request when credentials
// are absent, and domain.ErrEmptyCompletion for a well-formed but empty
// response.
type Completer interface {
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}
