package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const defaultSyncInterval = 5 * time.Minute

// syncRunner is the part of [SyncOrchestrator] the job drives.
type syncRunner interface {
	SyncAll(ctx context.Context, opts models.SyncOptions) (models.SyncResult, error)
}

type clientSyncJob struct {
	runner syncRunner
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that runs a full sync cycle on a ticker.
// The job is idle until Start is called.
func NewClientSyncJob(runner syncRunner, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{runner: runner, logger: logger}
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. A non-positive interval defaults to
// 5 minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *clientSyncJob) tick(ctx context.Context) {
	result, err := j.runner.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionBoth})
	switch {
	case err != nil && isQuietSyncError(err):
		j.logger.Debug().Err(err).Msg("scheduled sync skipped")
	case err != nil:
		j.logger.Err(err).Str("func", "clientSyncJob.tick").Msg("scheduled sync failed")
	case !result.Success:
		j.logger.Warn().Strs("errors", result.Errors).Msg("scheduled sync finished with errors")
	}
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
