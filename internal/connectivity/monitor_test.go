package connectivity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// switchPinger answers according to a flag the test flips.
type switchPinger struct {
	down  atomic.Bool
	calls atomic.Int32
}

func (p *switchPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return ctx.Err()
}

type transitions struct {
	mu  sync.Mutex
	got []bool
}

func (r *transitions) record(online bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, online)
}

func (r *transitions) list() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.got...)
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(&switchPinger{}, time.Second, logger.Nop())

	assert.False(t, m.IsOnline())
}

func TestMonitor_Check_NotifiesOnTransitionsOnly(t *testing.T) {
	p := &switchPinger{}
	m := NewMonitor(p, time.Second, logger.Nop())
	rec := &transitions{}
	m.Subscribe(rec.record)
	ctx := context.Background()

	assert.True(t, m.Check(ctx))
	assert.True(t, m.Check(ctx))

	p.down.Store(true)
	assert.False(t, m.Check(ctx))
	assert.False(t, m.Check(ctx))

	p.down.Store(false)
	assert.True(t, m.Check(ctx))

	assert.Equal(t, []bool{true, false, true}, rec.list())
	assert.True(t, m.IsOnline())
}

func TestMonitor_FirstFailedProbeIsSilent(t *testing.T) {
	p := &switchPinger{}
	p.down.Store(true)
	m := NewMonitor(p, time.Second, logger.Nop())
	rec := &transitions{}
	m.Subscribe(rec.record)

	m.Check(context.Background())

	assert.Empty(t, rec.list())
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(&switchPinger{}, time.Second, logger.Nop())
	rec := &transitions{}
	unsubscribe := m.Subscribe(rec.record)

	unsubscribe()
	m.Check(context.Background())

	assert.Empty(t, rec.list())
}

func TestMonitor_Run_PollsUntilCancelled(t *testing.T) {
	p := &switchPinger{}
	m := NewMonitor(p, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsOnline())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMonitor_DefaultInterval(t *testing.T) {
	m := NewMonitor(&switchPinger{}, 0, logger.Nop())

	assert.Equal(t, defaultInterval, m.interval)
}
