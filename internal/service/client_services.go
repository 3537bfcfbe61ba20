package service

import (
	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
)

// ClientServices wires the sync engine of one device.
type ClientServices struct {
	AuthService   ClientAuthService
	RecordService ClientRecordService
	Queue         SyncQueue
	Resolver      ConflictResolver
	Orchestrator  SyncOrchestrator
	SyncJob       ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, connectivity ConnectivitySignal, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	authSvc := NewClientAuthService(storages.Sessions, remote, logger)
	queue := NewSyncQueue(storages.Queue, NewRetryPolicy(cfg.RetryBase, cfg.RetryMax), logger)
	pusher := NewPusher(storages.Records, remote, cfg.PurgeTombstones, logger)
	puller := NewPuller(storages.Records, remote, cfg.PurgeTombstones, logger)
	resolver := NewConflictResolver(storages.Records, remote, pusher, logger)

	orchestrator := NewSyncOrchestrator(OrchestratorDeps{
		Queue:        queue,
		Pusher:       pusher,
		Puller:       puller,
		Resolver:     resolver,
		Records:      storages.Records,
		Meta:         storages.Meta,
		Auth:         authSvc,
		Connectivity: connectivity,
	}, cfg, logger)

	return &ClientServices{
		AuthService:   authSvc,
		RecordService: NewClientRecordService(storages.Records, orchestrator, authSvc, logger),
		Queue:         queue,
		Resolver:      resolver,
		Orchestrator:  orchestrator,
		SyncJob:       NewClientSyncJob(orchestrator, logger),
	}
}
