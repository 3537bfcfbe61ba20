package service

import "errors"

// Remote store server errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUnknownTable        = errors.New("unknown entity table")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Sync engine errors.
var (
	ErrOffline             = errors.New("remote store is unreachable")
	ErrNotAuthenticated    = errors.New("no valid session")
	ErrSyncInProgress      = errors.New("sync already in progress")
	ErrQueueNotInitialized = errors.New("sync queue is not initialized")
	ErrInvalidOperation    = errors.New("invalid queued operation")
	ErrUnknownDirection    = errors.New("unknown sync direction")

	ErrUnknownStrategy      = errors.New("unknown conflict resolution strategy")
	ErrRemoteRecordNotFound = errors.New("remote copy of the record was not found")
	ErrNoConflict           = errors.New("record is not in conflict")
)
