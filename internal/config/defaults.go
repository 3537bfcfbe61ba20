package config

import "time"

const (
	defaultTokenDuration        = 24 * time.Hour
	defaultTokenIssuer          = "go-ledger-sync"
	defaultServerAddress        = "localhost:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultAdapterTimeout       = 10 * time.Second
	defaultLocalDSN             = "ledger.db"
	defaultSyncInterval         = 5 * time.Minute
	defaultStrategy             = "local-wins"
	defaultRetryBase            = time.Second
	defaultRetryMax             = 5 * time.Minute
	defaultConnectivityInterval = 15 * time.Second
)

func defaultConfig() *StructuredConfig {
	autoResolve := true
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			LogLevel:      "debug",
		},
		Storage: Storage{
			Local: Local{DSN: defaultLocalDSN},
		},
		Server: Server{
			HTTPAddress:     defaultServerAddress,
			RequestTimeout:  defaultRequestTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultServerAddress,
			RequestTimeout: defaultAdapterTimeout,
		},
		Sync: Sync{
			Interval:             defaultSyncInterval,
			AutoResolve:          &autoResolve,
			DefaultStrategy:      defaultStrategy,
			RetryBase:            defaultRetryBase,
			RetryMax:             defaultRetryMax,
			ConnectivityInterval: defaultConnectivityInterval,
		},
	}
}
