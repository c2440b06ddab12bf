package application

import (
	"strings"

	"github.com/jngu/ngubot/internal/domain"
)

// ContextAssembler builds the exact turn sequence submitted to the
// completion service: the stored history plus, for shared surfaces, a
// roster listing and a digest of recent DM activity appended to a copy of
// the system turn.
type ContextAssembler struct {
	history *HistoryStore
	actions *ActionLog
}

func NewContextAssembler(history *HistoryStore, actions *ActionLog) *ContextAssembler {
	return &ContextAssembler{history: history, actions: actions}
}

// Build returns the context for one completion call. A nil roster marks the
// surface as private; shared surfaces pass the live roster snapshot. The
// dynamic annotations go on a copy of the first turn only; the stored
// system turn stays untouched so repeated builds never compound the text.
func (a *ContextAssembler) Build(key domain.ConversationKey, roster []domain.Identity) []domain.Turn {
	a.history.Ensure(key, roster == nil)
	turns := a.history.Read(key)
	if roster == nil || len(turns) == 0 || turns[0].Role != domain.RoleSystem {
		return turns
	}

	memberContext := describeRoster(roster)
	actionContext := describeActions(a.actions.Recent(contextActionCount))
	if memberContext == "" && actionContext == "" {
		return turns
	}

	system := turns[0]
	system.Content += memberContext + actionContext
	turns[0] = system

	return turns
}

func describeRoster(roster []domain.Identity) string {
	if len(roster) == 0 {
		return ""
	}

	entries := make([]string, 0, len(roster))
	for _, member := range roster {
		entry := member.Label()
		if len(member.Aliases) > 0 {
			entry += " also known as: " + strings.Join(member.Aliases, ", ")
		}
		entries = append(entries, entry)
	}

	return "\n\nServer Members: " + strings.Join(entries, ", ")
}

func describeActions(records []domain.ActionRecord) string {
	if len(records) == 0 {
		return ""
	}

	digests := make([]string, 0, len(records))
	for _, rec := range records {
		digests = append(digests, rec.Digest())
	}

	return "\n\nRecent DMs sent: " + strings.Join(digests, ", ")
}
