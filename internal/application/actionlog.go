package application

import (
	"sync"

	"github.com/jngu/ngubot/internal/domain"
)

const (
	DefaultActionLogCap = 64

	// contextActionCount is how many recent actions the context assembler
	// surfaces to the model.
	contextActionCount = 5
)

// ActionLog records the direct messages the bot has sent (or failed to
// send) so the model keeps situational memory of its own side effects.
// Storage is a bounded ring: only the most recent records are ever read,
// so older ones are dropped instead of accumulating for the process
// lifetime.
type ActionLog struct {
	mu      sync.RWMutex
	cap     int
	records []domain.ActionRecord
}

func NewActionLog(capacity int) *ActionLog {
	if capacity <= 0 {
		capacity = DefaultActionLogCap
	}

	return &ActionLog{cap: capacity}
}

func (l *ActionLog) Record(rec domain.ActionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, rec)
	if len(l.records) > l.cap {
		l.records = l.records[len(l.records)-l.cap:]
	}
}

// Recent returns the last n records, oldest first.
func (l *ActionLog) Recent(n int) []domain.ActionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || len(l.records) == 0 {
		return nil
	}
	start := len(l.records) - n
	if start < 0 {
		start = 0
	}

	out := make([]domain.ActionRecord, len(l.records)-start)
	copy(out, l.records[start:])

	return out
}
