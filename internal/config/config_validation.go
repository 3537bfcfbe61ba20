// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// validate checks cross-cutting invariants of the merged config. Role
// specific requirements are checked by the projections.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.DefaultStrategy != "" {
		if _, err := models.ParseResolutionStrategy(cfg.Sync.DefaultStrategy); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSyncConfigs, err)
		}
	}

	if !models.SyncDirection(cfg.Client.Direction).Valid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidSyncConfigs, cfg.Client.Direction)
	}

	if cfg.Sync.RetryMax != 0 && cfg.Sync.RetryMax < cfg.Sync.RetryBase {
		return fmt.Errorf("%w: retry max is below retry base", ErrInvalidSyncConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.RetryBase <= 0 || cfg.Sync.ConnectivityInterval <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
