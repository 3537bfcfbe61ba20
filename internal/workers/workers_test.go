// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// blockingWorker counts starts and blocks until its context is done.
type blockingWorker struct {
	started atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		New(w1, w2, w3).Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for w1.started.Load()+w2.started.Load()+w3.started.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("not every worker was started")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for i, w := range []*blockingWorker{w1, w2, w3} {
		if got := w.started.Load(); got != 1 {
			t.Errorf("worker[%d]: expected 1 start, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	// Should return immediately on an empty list
	New().Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Run_WaitsForShortWorkers(t *testing.T) {
	var finished atomic.Int32
	short := Func(func(context.Context) {
		time.Sleep(5 * time.Millisecond)
		finished.Add(1)
	})

	New(short, short).Run(context.Background())

	if got := finished.Load(); got != 2 {
		t.Errorf("expected both workers to finish before Run returns, got %d", got)
	}
}
