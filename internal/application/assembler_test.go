package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngu/ngubot/internal/domain"
)

func TestBuildSeedsHistoryForUnseenKey(t *testing.T) {
	assembler := NewContextAssembler(NewHistoryStore(5), NewActionLog(5))

	turns := assembler.Build("fresh", nil)

	require.Len(t, turns, 1)
	assert.Equal(t, domain.RoleSystem, turns[0].Role)
}

func TestBuildAppendsRosterAndActionDigestToSystemTurnCopy(t *testing.T) {
	history := NewHistoryStore(5)
	actions := NewActionLog(10)
	assembler := NewContextAssembler(history, actions)
	key := domain.ConversationKey("chan-1")

	actions.Record(domain.ActionRecord{Recipient: "Boss", Content: "hello", Outcome: domain.ActionSuccess})
	roster := []domain.Identity{
		{Handle: "keyfungus", DisplayName: "Key", Aliases: []string{"Ngu", "งู"}},
	}

	turns := assembler.Build(key, roster)

	require.NotEmpty(t, turns)
	assert.Contains(t, turns[0].Content, "Server Members: Key (keyfungus) also known as: Ngu, งู")
	assert.Contains(t, turns[0].Content, `Recent DMs sent: Sent DM to Boss: "hello"`)
}

func TestBuildNeverMutatesStoredSystemTurn(t *testing.T) {
	history := NewHistoryStore(5)
	actions := NewActionLog(10)
	assembler := NewContextAssembler(history, actions)
	key := domain.ConversationKey("chan-1")
	roster := []domain.Identity{{Handle: "alice", DisplayName: "Alice"}}

	first := assembler.Build(key, roster)
	stored := history.Read(key)[0].Content
	second := assembler.Build(key, []domain.Identity{{Handle: "bob", DisplayName: "Bob"}})

	// repeated builds must not compound the appended context
	assert.Equal(t, stored, history.Read(key)[0].Content)
	assert.NotContains(t, second[0].Content, "Alice")
	assert.Contains(t, first[0].Content, "Alice")
}

func TestBuildPrivateSurfaceReturnsBaseSequence(t *testing.T) {
	history := NewHistoryStore(5)
	actions := NewActionLog(10)
	actions.Record(domain.ActionRecord{Recipient: "Boss", Content: "hello", Outcome: domain.ActionSuccess})
	assembler := NewContextAssembler(history, actions)

	turns := assembler.Build("dm-1", nil)

	require.Len(t, turns, 1)
	assert.NotContains(t, turns[0].Content, "Recent DMs sent")
	assert.NotContains(t, turns[0].Content, "Server Members")
}

func TestBuildEmptyRosterWithoutActionsReturnsBaseSequence(t *testing.T) {
	history := NewHistoryStore(5)
	assembler := NewContextAssembler(history, NewActionLog(10))
	key := domain.ConversationKey("chan-1")

	base := assembler.Build(key, []domain.Identity{})

	assert.Equal(t, history.Read(key), base)
}

func TestBuildLimitsActionDigestToMostRecentFive(t *testing.T) {
	history := NewHistoryStore(5)
	actions := NewActionLog(20)
	assembler := NewContextAssembler(history, actions)

	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		actions.Record(domain.ActionRecord{Recipient: name, Content: "x", Outcome: domain.ActionSuccess})
	}

	turns := assembler.Build("chan-1", []domain.Identity{{Handle: "alice", DisplayName: "Alice"}})

	assert.NotContains(t, turns[0].Content, `Sent DM to a:`)
	assert.NotContains(t, turns[0].Content, `Sent DM to b:`)
	assert.Contains(t, turns[0].Content, `Sent DM to c:`)
	assert.Contains(t, turns[0].Content, `Sent DM to g:`)
}
