// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the remote store.
//
// [RemoteStore] decouples the sync engine from the transport. The package
// ships an HTTP/JSON implementation ([NewHTTPRemoteStore]) built on resty.
// Non-2xx responses are mapped by mapHTTPError to the sentinels in errors.go
// so callers can branch with [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrConflict] for 409).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore is the shared, eventually-consistent mirror of the local
// store. Every record call is scoped to the owner of the current token.
type RemoteStore interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token, or "" when none is set.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Ping checks that the remote store is reachable.
	Ping(ctx context.Context) error

	// FindByLocalID returns the remote counterpart of a local record, or
	// [ErrNotFound].
	FindByLocalID(ctx context.Context, table models.EntityTable, localID string) (models.RemoteRecord, error)

	// Insert creates a remote record. [ErrConflict] means a record with the
	// same local id already exists.
	Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)

	// Update overwrites the remote record matched by table and local id.
	Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error)

	// Delete records a tombstone. The first deletion time wins.
	Delete(ctx context.Context, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error)

	// QuerySince returns records of table written after since, ordered by
	// server write time. A nil since returns everything.
	QuerySince(ctx context.Context, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error)
}
