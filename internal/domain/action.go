package domain

import (
	"fmt"
	"time"
)

type ActionOutcome string

const (
	ActionSuccess ActionOutcome = "success"
	ActionFailure ActionOutcome = "failure"
)

// ActionRecord documents one attempted side effect: a direct message sent
// (or not) to a third party on the model's behalf. Recent records are fed
// back into the prompt so the model remembers what it has already done.
type ActionRecord struct {
	ID          string
	Recipient   string
	Content     string
	Timestamp   time.Time
	Outcome     ActionOutcome
	ErrorDetail string
}

// Digest renders the record the way it appears in the system-turn context.
func (r ActionRecord) Digest() string {
	if r.Outcome == ActionSuccess {
		return fmt.Sprintf("Sent DM to %s: %q", r.Recipient, r.Content)
	}

	return fmt.Sprintf("Failed to DM %s", r.Recipient)
}
