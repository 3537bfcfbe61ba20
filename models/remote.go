package models

import "time"

// RemoteRecord is the wire and storage form of a record in the remote store.
type RemoteRecord struct {
	ID        int64       `json:"id"`
	OwnerID   int64       `json:"owner_id"`
	Table     EntityTable `json:"table"`
	LocalID   string      `json:"local_id"`
	Payload   Payload     `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
	// UpdatedAt is the modification time reported by the device.
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	// ServerUpdatedAt is the server clock at the last write and serves as
	// the pull cursor.
	ServerUpdatedAt time.Time `json:"server_updated_at"`
}

// IsDeleted reports whether the remote copy is a tombstone.
func (r RemoteRecord) IsDeleted() bool {
	return r.DeletedAt != nil
}

// NewRemoteRecord builds the upload form of a local record.
func NewRemoteRecord(rec SyncableRecord, payload Payload) RemoteRecord {
	out := RemoteRecord{
		OwnerID:   rec.OwnerID,
		Table:     rec.Table,
		LocalID:   rec.LocalID,
		Payload:   payload,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		DeletedAt: rec.DeletedAt,
	}
	if rec.RemoteID != nil {
		out.ID = *rec.RemoteID
	}
	return out
}
