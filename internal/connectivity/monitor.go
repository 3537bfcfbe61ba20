package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

const (
	defaultInterval = 15 * time.Second
	probeTimeout    = 5 * time.Second
)

// Pinger is the health probe of the remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor polls a [Pinger] and keeps the last known reachability.
type Monitor struct {
	pinger   Pinger
	interval time.Duration

	mu          sync.Mutex
	online      bool
	checked     bool
	subscribers map[int]func(online bool)
	nextID      int

	logger *logger.Logger
}

// NewMonitor returns a monitor that reports offline until the first
// successful probe. A non-positive interval defaults to 15 seconds.
func NewMonitor(pinger Pinger, interval time.Duration, logger *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Monitor{
		pinger:      pinger,
		interval:    interval,
		subscribers: make(map[int]func(bool)),
		logger:      logger,
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers fn for reachability transitions. Callbacks run on the
// probing goroutine, one at a time.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Check probes the remote store once and notifies subscribers when the
// result differs from the previous one. The first probe always counts as a
// transition when it succeeds.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := m.pinger.Ping(probeCtx)
	cancel()

	online := err == nil

	m.mu.Lock()
	changed := online != m.online || (!m.checked && online)
	m.online = online
	m.checked = true
	var notify []func(bool)
	if changed {
		notify = make([]func(bool), 0, len(m.subscribers))
		for _, fn := range m.subscribers {
			notify = append(notify, fn)
		}
	}
	m.mu.Unlock()

	if !changed {
		return online
	}

	if online {
		m.logger.Info().Msg("remote store is reachable")
	} else {
		m.logger.Warn().Err(err).Msg("remote store is unreachable")
	}
	for _, fn := range notify {
		fn(online)
	}
	return online
}

// Run probes immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Check(ctx)
		}
	}
}
