package application

import (
	"sync"

	"github.com/jngu/ngubot/internal/domain"
)

const DefaultMaxTurns = 20

// HistoryStore holds the per-conversation turn sequences. It is an injected
// container, not a package singleton, so tests construct isolated instances.
// History is memory-resident and intentionally volatile across restarts.
//
// Discordgo dispatches handlers on separate goroutines, so every mutation is
// guarded; an append and its bound trim happen under one lock acquisition so
// concurrent turns on the same key never lose updates.
type HistoryStore struct {
	mu       sync.RWMutex
	maxTurns int
	turns    map[domain.ConversationKey][]domain.Turn
}

func NewHistoryStore(maxTurns int) *HistoryStore {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	return &HistoryStore{
		maxTurns: maxTurns,
		turns:    make(map[domain.ConversationKey][]domain.Turn),
	}
}

// Ensure seeds the conversation with the persona turn appropriate for the
// surface. Seeding happens once per key; later calls are no-ops, so the
// sequence never gains a second system turn.
func (s *HistoryStore) Ensure(key domain.ConversationKey, isPrivate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.turns[key]; ok {
		return
	}
	s.turns[key] = []domain.Turn{domain.SystemTurn(isPrivate)}
}

// Append commits one turn and trims to the bound in the same critical
// section. The seeded system turn at position zero is exempt from the count
// and never evicted; eviction is oldest-first beyond it.
func (s *HistoryStore) Append(key domain.ConversationKey, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.turns[key], turn)

	protected := 0
	if len(turns) > 0 && turns[0].Role == domain.RoleSystem {
		protected = 1
	}
	for len(turns)-protected > s.maxTurns {
		turns = append(turns[:protected], turns[protected+1:]...)
	}

	s.turns[key] = turns
}

// Read returns a copy of the current sequence; callers may decorate it
// freely without touching stored state.
func (s *HistoryStore) Read(key domain.ConversationKey) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.turns[key]
	out := make([]domain.Turn, len(stored))
	copy(out, stored)

	return out
}
