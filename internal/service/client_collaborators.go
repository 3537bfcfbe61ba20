package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=client_collaborators.go -destination=../mock/client_collaborators_mock.go -package=mock

// AuthProvider tells the sync engine whether it may talk to the remote store
// and on whose behalf.
type AuthProvider interface {
	HasValidSession() bool
	OwnerID() int64
}

// ConnectivitySignal is a boolean online/offline source with change
// notifications.
type ConnectivitySignal interface {
	IsOnline() bool
	// Subscribe registers fn for online/offline transitions and returns a
	// function that removes it.
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// SyncScheduler records a local mutation so it reaches the remote store even
// if the process restarts before the next sync cycle.
type SyncScheduler interface {
	ScheduleForSync(ctx context.Context, op models.OperationType, table models.EntityTable, localID string) error
}
