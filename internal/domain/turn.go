package domain

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationKey identifies one conversation surface: a guild channel or a
// private (one-to-one) conversation. It is the sole key into the history
// store and is stable for the lifetime of the surface.
type ConversationKey string

// Turn is one message-equivalent unit of a conversation. Speaker is kept as
// a separate tag rather than baked into Content so the attribution can be
// reshaped without rewriting stored history.
type Turn struct {
	Role    Role
	Content string
	Speaker string
}

// Rendered returns the text submitted to the completion service. User turns
// on shared surfaces carry an attribution prefix so the model can tell
// multi-party input apart.
func (t Turn) Rendered() string {
	if t.Speaker == "" {
		return t.Content
	}

	return t.Speaker + ": " + t.Content
}
