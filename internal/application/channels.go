package application

import (
	"sync"

	"github.com/jngu/ngubot/internal/domain"
)

// ChannelTable tracks which channel, if any, each guild has designated as
// the bot's dedicated channel. At most one per guild; volatile across
// restarts like the rest of the conversation state.
type ChannelTable struct {
	mu      sync.RWMutex
	byGuild map[string]domain.ConversationKey
}

func NewChannelTable() *ChannelTable {
	return &ChannelTable{byGuild: make(map[string]domain.ConversationKey)}
}

func (t *ChannelTable) Designate(guildID string, channel domain.ConversationKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byGuild[guildID] = channel
}

func (t *ChannelTable) Clear(guildID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byGuild, guildID)
}

func (t *ChannelTable) IsDedicated(guildID string, channel domain.ConversationKey) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return guildID != "" && t.byGuild[guildID] == channel
}
