package validators

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Field names accepted by [RecordValidator].
const (
	FieldTable     = "table"
	FieldLocalID   = "local_id"
	FieldUpdatedAt = "updated_at"
	FieldDeletedAt = "deleted_at"
	FieldPayload   = "payload"

	FieldLogin    = "login"
	FieldPassword = "password"
)

const (
	maxLocalIDLength = 128
	maxPayloadBytes  = 64 << 10
	// device clocks drift, but not by days
	maxClockSkew = 24 * time.Hour
)

type RecordValidator struct {
	now func() time.Time
}

func NewRecordValidator() Validator {
	return &RecordValidator{now: time.Now}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RemoteRecord:
		return v.validateRecord(value, fields...)
	case *models.RemoteRecord:
		return v.validateRecord(*value, fields...)

	case models.RecordRef:
		return v.validateRef(value, fields...)
	case *models.RecordRef:
		return v.validateRef(*value, fields...)

	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(record models.RemoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTable, FieldLocalID, FieldUpdatedAt, FieldDeletedAt, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldTable, FieldLocalID:
			if err := v.validateRef(models.RecordRef{Table: record.Table, LocalID: record.LocalID}, f); err != nil {
				return err
			}
		case FieldUpdatedAt:
			if record.UpdatedAt.IsZero() {
				return ErrMissingUpdatedAt
			}
			if record.UpdatedAt.After(v.now().Add(maxClockSkew)) {
				return ErrUpdatedInFuture
			}
		case FieldDeletedAt:
			if record.DeletedAt != nil && !record.CreatedAt.IsZero() && record.DeletedAt.Before(record.CreatedAt) {
				return ErrInvalidDeletedAt
			}
		case FieldPayload:
			raw, err := json.Marshal(record.Payload)
			if err != nil || len(raw) > maxPayloadBytes {
				return ErrPayloadTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRef(ref models.RecordRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTable, FieldLocalID}
	}

	for _, f := range fields {
		switch f {
		case FieldTable:
			if !ref.Table.Valid() {
				return ErrInvalidTable
			}
		case FieldLocalID:
			if ref.LocalID == "" || len(ref.LocalID) > maxLocalIDLength {
				return ErrInvalidLocalID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
