package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a database error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists accounts of the remote store.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// RemoteRecordRepository persists the remote copies of synchronised records.
// Every method is scoped to one owner.
type RemoteRecordRepository interface {
	// Insert stores a new record. Returns [ErrRecordAlreadyExists] when the
	// owner already has a record with the same table and local id.
	Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)
	// Update overwrites the payload and timestamps of an existing record.
	// Returns [ErrRecordNotFound] when there is nothing to update.
	Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)
	// Get returns the record addressed by its local id.
	Get(ctx context.Context, ownerID int64, table models.EntityTable, localID string) (models.RemoteRecord, error)
	// Delete turns the record into a tombstone.
	Delete(ctx context.Context, ownerID int64, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error)
	// ListSince returns the records of table whose server write time is
	// after since, oldest first. A nil since returns everything.
	ListSince(ctx context.Context, ownerID int64, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error)
}
