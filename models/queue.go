package models

import (
	"fmt"
	"time"
)

// OperationType is the kind of local mutation waiting to be replayed.
type OperationType string

const (
	OpCreate OperationType = "create"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
)

// Valid reports whether o is a known operation.
func (o OperationType) Valid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

// QueuedOperation is a durable record of a local mutation that has not been
// confirmed by the remote store yet. At most one entry exists per record.
type QueuedOperation struct {
	Operation OperationType `json:"operation"`
	Table     EntityTable   `json:"table"`
	LocalID   string        `json:"local_id"`
	Timestamp time.Time     `json:"timestamp"`

	// Attempts counts failed replays.
	Attempts int `json:"attempts"`
	// NextAttemptAt gates the next replay; nil means due now.
	NextAttemptAt *time.Time `json:"next_attempt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// Ref returns the address of the queued record.
func (q QueuedOperation) Ref() RecordRef {
	return RecordRef{Table: q.Table, LocalID: q.LocalID}
}

// Due reports whether the entry may be replayed at now.
func (q QueuedOperation) Due(now time.Time) bool {
	return q.NextAttemptAt == nil || !q.NextAttemptAt.After(now)
}

func (q QueuedOperation) String() string {
	return fmt.Sprintf("%s %s/%s", q.Operation, q.Table, q.LocalID)
}

// QueueResult summarises one replay of the pending-operation queue.
type QueueResult struct {
	Processed int      `json:"processed"`
	Deferred  int      `json:"deferred"`
	Errors    []string `json:"errors,omitempty"`
}
