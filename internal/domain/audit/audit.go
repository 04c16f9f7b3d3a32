// Package audit defines the audit trail contract for business mutations.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"backoffice/internal/core/id"
)

// Action is the audited operation type.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionVoid   Action = "void"
	ActionAnnul  Action = "annul"
)

// Entry is a single audit record. Changes carries the relevant document
// snapshot as JSON.
type Entry struct {
	ID         id.ID           `db:"id"`
	EntityType string          `db:"entity_type"`
	EntityID   id.ID           `db:"entity_id"`
	Action     Action          `db:"action"`
	UserID     string          `db:"user_id"`
	Changes    json.RawMessage `db:"changes"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Recorder persists audit entries. Record is called inside the business
// transaction so the trail commits or rolls back with the mutation.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NopRecorder discards entries. Used in tests.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, entry Entry) error { return nil }
