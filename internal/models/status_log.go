package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusChange is one immutable entry in a payment's audit trail.
type StatusChange struct {
	Status    PaymentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	ActorID   uuid.UUID     `json:"actor_id"`
	Note      string        `json:"note,omitempty"`
}

// StatusLog is an append-only audit trail. Entries can only be added through
// Record; readers get copies, so existing entries cannot be altered.
type StatusLog struct {
	entries []StatusChange
}

func (l *StatusLog) Record(change StatusChange) {
	l.entries = append(l.entries, change)
}

// Entries returns a copy of the log in insertion order.
func (l *StatusLog) Entries() []StatusChange {
	out := make([]StatusChange, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *StatusLog) Len() int { return len(l.entries) }

// Last returns the most recent entry, or false when the log is empty.
func (l *StatusLog) Last() (StatusChange, bool) {
	if len(l.entries) == 0 {
		return StatusChange{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l StatusLog) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

func (l *StatusLog) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &l.entries)
}
