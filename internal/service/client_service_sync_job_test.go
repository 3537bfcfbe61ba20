// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySyncRunner counts SyncAll calls and remembers the last options.
type spySyncRunner struct {
	calls atomic.Int64
	err   error

	mu   sync.Mutex
	last models.SyncOptions
}

func (s *spySyncRunner) SyncAll(_ context.Context, opts models.SyncOptions) (models.SyncResult, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.last = opts
	s.mu.Unlock()
	return models.SyncResult{Success: s.err == nil}, s.err
}

func (s *spySyncRunner) lastOptions() models.SyncOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	job := NewClientSyncJob(&spySyncRunner{}, logger.Nop())
	require.NotNil(t, job)

	var _ ClientSyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_RunsFullCycles(t *testing.T) {
	spy := &spySyncRunner{}
	job := NewClientSyncJob(spy, logger.Nop())

	// 10ms interval: about 5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "SyncAll called %d times", got)
	assert.Equal(t, models.DirectionBoth, spy.lastOptions().Direction)
	assert.False(t, spy.lastOptions().Force)
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncRunner{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls expected after Stop")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spySyncRunner{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spySyncRunner{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spySyncRunner{}
		job := NewClientSyncJob(spy, logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())

		job.Start(ctx, interval)
		time.Sleep(20 * time.Millisecond)
		cancel()
		job.Stop()

		assert.Equal(t, int64(0), spy.calls.Load(), "interval %s", interval)
	}
}

func TestClientSyncJob_Restart_KeepsRunning(t *testing.T) {
	spy := &spySyncRunner{}
	job := NewClientSyncJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	require.Greater(t, callsBefore, int64(0))

	// Start on a running job stops the previous goroutine first
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewClientSyncJob(&spySyncRunner{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestClientSyncJob_Errors_DoNotStopJob(t *testing.T) {
	for _, err := range []error{ErrOffline, ErrSyncInProgress, assert.AnError} {
		spy := &spySyncRunner{err: err}
		job := NewClientSyncJob(spy, logger.Nop())

		job.Start(context.Background(), 10*time.Millisecond)
		time.Sleep(55 * time.Millisecond)
		job.Stop()

		assert.GreaterOrEqual(t, spy.calls.Load(), int64(3), "error %v", err)
	}
}
