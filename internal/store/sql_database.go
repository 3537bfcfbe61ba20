package store

import (
	"database/sql"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// DB is a database handle shared by the repositories of one storage role.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	migrate            func(*sql.DB) error
}

// Migrate applies the embedded schema of the storage role the handle was
// opened for.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return nil
	}
	return db.migrate(db.DB)
}
