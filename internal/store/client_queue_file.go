package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/models"
)

type fileQueuePersistence struct {
	path string
	mu   sync.Mutex
}

type persistedQueue struct {
	Version    int                      `json:"version"`
	Operations []models.QueuedOperation `json:"operations"`
}

const persistedQueueVersion = 1

// NewFileQueuePersistence stores the pending-operation queue as a JSON
// document at path. A missing file is an empty queue.
func NewFileQueuePersistence(path string) QueuePersistence {
	return &fileQueuePersistence{path: path}
}

func (f *fileQueuePersistence) Load(_ context.Context) ([]models.QueuedOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.QueuedOperation{}, nil
		}
		return nil, fmt.Errorf("read queue file: %w", err)
	}

	var st persistedQueue
	if err = json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode queue file: %w", err)
	}
	if st.Operations == nil {
		st.Operations = []models.QueuedOperation{}
	}

	return st.Operations, nil
}

// Save writes to a temporary file and renames it over the old one so a crash
// never leaves a truncated queue behind.
func (f *fileQueuePersistence) Save(_ context.Context, ops []models.QueuedOperation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create queue dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(persistedQueue{Version: persistedQueueVersion, Operations: ops}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}

	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write queue file: %w", err)
	}
	if err = os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace queue file: %w", err)
	}

	return nil
}
