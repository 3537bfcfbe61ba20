package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// ClientApp holds client logging settings.
type ClientApp struct {
	LogLevel string
	LogFile  string
}

// ClientAdapter holds the remote store endpoint settings.
type ClientAdapter struct {
	// HTTPAddress is the remote store base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
	// QueueFile, when set, stores the pending-operation queue as JSON.
	QueueFile string
}

// ClientSync holds the resolved sync engine settings.
type ClientSync struct {
	Interval             time.Duration
	AutoResolve          bool
	DefaultStrategy      models.ResolutionStrategy
	PurgeTombstones      bool
	RetryBase            time.Duration
	RetryMax             time.Duration
	ConnectivityInterval time.Duration
}

// ClientRun describes what the client binary does after start-up.
type ClientRun struct {
	Login     string
	Password  string
	Register  bool
	Once      bool
	Direction models.SyncDirection
	Force     bool
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Run     ClientRun
}

// GetClientConfig loads the structured config and projects the fields the
// sync client needs.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	strategy, err := models.ParseResolutionStrategy(cfg.Sync.DefaultStrategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyncConfigs, err)
	}

	autoResolve := true
	if cfg.Sync.AutoResolve != nil {
		autoResolve = *cfg.Sync.AutoResolve
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			LogLevel: cfg.App.LogLevel,
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB:        ClientDB{DSN: cfg.Storage.Local.DSN},
			QueueFile: cfg.Sync.QueueFile,
		},
		Sync: ClientSync{
			Interval:             cfg.Sync.Interval,
			AutoResolve:          autoResolve,
			DefaultStrategy:      strategy,
			PurgeTombstones:      cfg.Sync.PurgeTombstones,
			RetryBase:            cfg.Sync.RetryBase,
			RetryMax:             cfg.Sync.RetryMax,
			ConnectivityInterval: cfg.Sync.ConnectivityInterval,
		},
		Run: ClientRun{
			Login:     cfg.Client.Login,
			Password:  cfg.Client.Password,
			Register:  cfg.Client.Register,
			Once:      cfg.Client.Once,
			Direction: models.SyncDirection(cfg.Client.Direction),
			Force:     cfg.Client.Force,
		},
	}

	return clientCfg, clientCfg.validate()
}
