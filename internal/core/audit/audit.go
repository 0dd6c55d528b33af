// Package audit defines the change-log contract. Mutating operations
// record what changed; the storage layer decides how entries are
// persisted and compressed.
package audit

import (
	"context"
	"time"

	"tillpoint/internal/core/id"
)

// Action identifies the kind of change.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one recorded change.
type Entry struct {
	ID         id.ID     `db:"id" json:"id"`
	Entity     string    `db:"entity" json:"entity"`
	EntityID   id.ID     `db:"entity_id" json:"entityId"`
	Action     Action    `db:"action" json:"action"`
	Payload    []byte    `db:"payload" json:"-"`
	Compressed bool      `db:"compressed" json:"-"`
	UserID     string    `db:"user_id" json:"userId"`
	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`
}

// Recorder persists change entries. Implementations must not fail the
// business operation: recording errors are logged, not propagated.
type Recorder interface {
	Record(ctx context.Context, entity string, entityID id.ID, action Action, payload any)
}

// Nop discards all entries. Used in tests.
type Nop struct{}

func (Nop) Record(context.Context, string, id.ID, Action, any) {}
