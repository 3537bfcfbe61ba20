package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when a user with the same login is
	// already registered.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no user matches the login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when no record matches the requested
	// table and identifier.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordAlreadyExists is returned on insert of a record whose local id
	// is already present for the same table (and owner, on the server).
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrStaleRecord is returned by compare-and-set updates when the record
	// was modified after the caller read it.
	ErrStaleRecord = errors.New("record was modified concurrently")

	// ErrLocalSessionNotFound is returned when no session is persisted on
	// this device.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrMetaKeyNotFound is returned when a sync metadata key was never set.
	ErrMetaKeyNotFound = errors.New("sync metadata key not found")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
