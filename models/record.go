// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// EntityTable names a synchronised entity type. Every local and remote record
// belongs to exactly one table.
type EntityTable string

const (
	TableCategories   EntityTable = "categories"
	TableTransactions EntityTable = "transactions"
	TableBudgets      EntityTable = "budgets"
)

// EntityTables returns all entity tables in dependency order: categories are
// referenced by transactions and budgets, so they always come first.
func EntityTables() []EntityTable {
	return []EntityTable{TableCategories, TableTransactions, TableBudgets}
}

// Priority returns the replay position of the table. Unknown tables sort last.
func (t EntityTable) Priority() int {
	for i, table := range EntityTables() {
		if table == t {
			return i
		}
	}
	return len(EntityTables())
}

// Valid reports whether t is one of the known entity tables.
func (t EntityTable) Valid() bool {
	return t.Priority() < len(EntityTables())
}

func (t EntityTable) String() string {
	return string(t)
}

// SyncStatus is the reconciliation state of a local record.
type SyncStatus string

const (
	// StatusPending marks a record modified locally and not yet confirmed
	// uploaded.
	StatusPending SyncStatus = "pending"
	// StatusSynced marks a record on which local and remote agree as of
	// SyncedAt.
	StatusSynced SyncStatus = "synced"
	// StatusConflict marks a record whose local and remote copies diverged.
	StatusConflict SyncStatus = "conflict"
)

// RecordRef addresses a single record in the local store.
type RecordRef struct {
	Table   EntityTable `json:"table"`
	LocalID string      `json:"local_id"`
}

func (r RecordRef) String() string {
	return fmt.Sprintf("%s/%s", r.Table, r.LocalID)
}

// SyncableRecord is a single entity instance in the local store together with
// its synchronisation bookkeeping.
type SyncableRecord struct {
	// Table is the entity type of the record.
	Table EntityTable `json:"table"`

	// LocalID is assigned by the local store at creation time. It is stable
	// and never reused; it travels to the remote store so both copies can be
	// correlated across sync cycles.
	LocalID string `json:"local_id"`

	// RemoteID is assigned by the remote store on the first successful push.
	// Nil until then.
	RemoteID *int64 `json:"remote_id,omitempty"`

	// OwnerID is the authenticated user the record belongs to.
	OwnerID int64 `json:"owner_id"`

	// Payload holds the entity-specific fields. The sync engine never
	// interprets it beyond the declared references.
	Payload Payload `json:"payload"`

	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the authority for every ordering decision.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt is the soft-delete marker. A deleted record is still synced
	// as a tombstone.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	SyncStatus SyncStatus `json:"sync_status"`

	// SyncedAt is the time of the last successful reconciliation.
	SyncedAt *time.Time `json:"synced_at,omitempty"`
}

// Ref returns the address of the record.
func (r SyncableRecord) Ref() RecordRef {
	return RecordRef{Table: r.Table, LocalID: r.LocalID}
}

// IsDeleted reports whether the record is a tombstone.
func (r SyncableRecord) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Payload is the opaque, JSON-encoded body of a record.
type Payload map[string]any

// Clone returns a shallow copy of p. Nested values are shared.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Value implements [driver.Valuer]. The payload is stored as JSON text.
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON text or bytes.
func (p *Payload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payload source type %T", src)
	}

	decoded := Payload{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	*p = decoded
	return nil
}

// Reference describes a payload field that holds the local id of a record in
// another table, e.g. a transaction's category.
type Reference struct {
	// Field is the payload key carrying the referenced local id.
	Field string
	// Target is the table the referenced record lives in.
	Target EntityTable
}

// RemoteField is the payload key the pusher fills with the remote id of the
// referenced record.
func (r Reference) RemoteField() string {
	return r.Field + "_remote_id"
}

var references = map[EntityTable][]Reference{
	TableTransactions: {{Field: "category_id", Target: TableCategories}},
	TableBudgets:      {{Field: "category_id", Target: TableCategories}},
}

// References returns the cross-entity references declared for table.
func References(table EntityTable) []Reference {
	return references[table]
}
