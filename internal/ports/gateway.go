package ports

import (
	"context"

	"github.com/jngu/ngubot/internal/domain"
)

// DirectMessenger sends a direct message to a member on the bot's behalf.
// A send rejection (recipient has DMs disabled, recipient left) comes back
// as an error; callers record it rather than escalate.
type DirectMessenger interface {
	SendDirectMessage(ctx context.Context, recipient domain.Identity, text string) error
}

// RosterProvider returns the live non-bot membership of a guild, resolved
// to identities with configured aliases attached. The snapshot is
// recomputed per call; membership can change between calls.
type RosterProvider interface {
	Roster(ctx context.Context, guildID string) ([]domain.Identity, error)
}
