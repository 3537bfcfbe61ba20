package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidTable     = errors.New("invalid entity table")
	ErrInvalidLocalID   = errors.New("invalid local id")
	ErrMissingUpdatedAt = errors.New("updated_at is required")
	ErrUpdatedInFuture  = errors.New("updated_at is too far in the future")
	ErrInvalidDeletedAt = errors.New("deleted_at is before created_at")
	ErrPayloadTooLarge  = errors.New("payload is too large")

	ErrEmptyLogin    = errors.New("login is required")
	ErrEmptyPassword = errors.New("password is required")
)
