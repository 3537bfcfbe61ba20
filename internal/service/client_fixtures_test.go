package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// at returns t0 shifted by n seconds.
func at(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Second)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func txRef(id string) models.RecordRef {
	return models.RecordRef{Table: models.TableTransactions, LocalID: id}
}

func pendingTx(id string, updatedAt time.Time, amount int) models.SyncableRecord {
	return models.SyncableRecord{
		Table:      models.TableTransactions,
		LocalID:    id,
		OwnerID:    7,
		Payload:    models.Payload{"amount": float64(amount)},
		CreatedAt:  updatedAt,
		UpdatedAt:  updatedAt,
		SyncStatus: models.StatusPending,
	}
}

// memQueuePersistence keeps the saved queue in memory.
type memQueuePersistence struct {
	mu    sync.Mutex
	ops   []models.QueuedOperation
	saves int
	err   error
}

func (m *memQueuePersistence) Load(context.Context) ([]models.QueuedOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.QueuedOperation(nil), m.ops...), m.err
}

func (m *memQueuePersistence) Save(ctx context.Context, ops []models.QueuedOperation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.ops = append([]models.QueuedOperation(nil), ops...)
	return nil
}

// fakeRemoteStore is an in-memory remote store keyed by (table, local id).
// failOn makes selected local ids fail with a transport error.
type fakeRemoteStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[models.RecordRef]models.RemoteRecord
	clock   func() time.Time
	failOn  map[string]bool
	token   string
	inserts int
}

func newFakeRemoteStore(clock func() time.Time) *fakeRemoteStore {
	return &fakeRemoteStore{
		records: make(map[models.RecordRef]models.RemoteRecord),
		clock:   clock,
		failOn:  make(map[string]bool),
	}
}

func (f *fakeRemoteStore) put(rec models.RemoteRecord) models.RemoteRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == 0 {
		f.nextID++
		rec.ID = f.nextID
	}
	if rec.ServerUpdatedAt.IsZero() {
		rec.ServerUpdatedAt = f.clock()
	}
	f.records[models.RecordRef{Table: rec.Table, LocalID: rec.LocalID}] = rec
	return rec
}

func (f *fakeRemoteStore) get(ref models.RecordRef) (models.RemoteRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[ref]
	return rec, ok
}

func (f *fakeRemoteStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeRemoteStore) fail(localID string) error {
	if f.failOn[localID] {
		return fmt.Errorf("%w: connection reset", adapter.ErrTransport)
	}
	return nil
}

func (f *fakeRemoteStore) SetToken(token string) { f.token = token }
func (f *fakeRemoteStore) Token() string         { return f.token }

func (f *fakeRemoteStore) Register(context.Context, models.User) (models.Session, error) {
	return models.Session{}, adapter.ErrBadRequest
}

func (f *fakeRemoteStore) Login(context.Context, models.User) (models.Session, error) {
	return models.Session{}, adapter.ErrUnauthorized
}

func (f *fakeRemoteStore) Ping(context.Context) error { return nil }

func (f *fakeRemoteStore) FindByLocalID(_ context.Context, table models.EntityTable, localID string) (models.RemoteRecord, error) {
	if err := f.fail(localID); err != nil {
		return models.RemoteRecord{}, err
	}
	rec, ok := f.get(models.RecordRef{Table: table, LocalID: localID})
	if !ok {
		return models.RemoteRecord{}, adapter.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRemoteStore) Insert(_ context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	if err := f.fail(record.LocalID); err != nil {
		return models.RemoteRecord{}, err
	}
	if _, ok := f.get(models.RecordRef{Table: record.Table, LocalID: record.LocalID}); ok {
		return models.RemoteRecord{}, adapter.ErrConflict
	}
	f.mu.Lock()
	f.inserts++
	f.mu.Unlock()
	record.ID = 0
	record.ServerUpdatedAt = time.Time{}
	return f.put(record), nil
}

func (f *fakeRemoteStore) Update(_ context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	if err := f.fail(record.LocalID); err != nil {
		return models.RemoteRecord{}, err
	}
	existing, ok := f.get(models.RecordRef{Table: record.Table, LocalID: record.LocalID})
	if !ok {
		return models.RemoteRecord{}, adapter.ErrNotFound
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.ServerUpdatedAt = f.clock()
	return f.put(record), nil
}

func (f *fakeRemoteStore) Delete(_ context.Context, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error) {
	if err := f.fail(localID); err != nil {
		return models.RemoteRecord{}, err
	}
	existing, ok := f.get(models.RecordRef{Table: table, LocalID: localID})
	if !ok {
		return models.RemoteRecord{}, adapter.ErrNotFound
	}
	existing.DeletedAt = &deletedAt
	existing.UpdatedAt = deletedAt
	existing.ServerUpdatedAt = f.clock()
	return f.put(existing), nil
}

func (f *fakeRemoteStore) QuerySince(_ context.Context, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.RemoteRecord, 0)
	for _, rec := range f.records {
		if rec.Table == table && (since == nil || rec.ServerUpdatedAt.After(*since)) {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ adapter.RemoteStore = (*fakeRemoteStore)(nil)

// staticAuth is an AuthProvider with a fixed answer.
type staticAuth struct {
	valid   bool
	ownerID int64
}

func (s staticAuth) HasValidSession() bool { return s.valid }
func (s staticAuth) OwnerID() int64        { return s.ownerID }

// switchConnectivity is a ConnectivitySignal driven by the test.
type switchConnectivity struct {
	mu          sync.Mutex
	online      bool
	subscribers map[int]func(bool)
	next        int
}

func newSwitchConnectivity(online bool) *switchConnectivity {
	return &switchConnectivity{online: online, subscribers: make(map[int]func(bool))}
}

func (s *switchConnectivity) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *switchConnectivity) Subscribe(fn func(online bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *switchConnectivity) set(online bool) {
	s.mu.Lock()
	s.online = online
	fns := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(online)
	}
}

func (s *switchConnectivity) subscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func requireNoErrors(t *testing.T, errs []string) {
	t.Helper()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
