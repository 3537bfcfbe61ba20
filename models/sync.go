// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncDirection restricts which passes a sync cycle runs.
type SyncDirection string

const (
	DirectionBoth SyncDirection = "both"
	DirectionPush SyncDirection = "push"
	DirectionPull SyncDirection = "pull"
)

// Pushes reports whether the direction includes the push pass.
func (d SyncDirection) Pushes() bool {
	return d == DirectionBoth || d == DirectionPush || d == ""
}

// Pulls reports whether the direction includes the pull pass.
func (d SyncDirection) Pulls() bool {
	return d == DirectionBoth || d == DirectionPull || d == ""
}

// Valid reports whether d is a known direction. The zero value means both.
func (d SyncDirection) Valid() bool {
	switch d {
	case "", DirectionBoth, DirectionPush, DirectionPull:
		return true
	}
	return false
}

// SyncState is the observable state of the sync orchestrator.
type SyncState string

const (
	StateIdle    SyncState = "idle"
	StateSyncing SyncState = "syncing"
	StateError   SyncState = "error"
	StateOffline SyncState = "offline"
)

// SyncOptions parameterises a sync cycle.
type SyncOptions struct {
	Direction SyncDirection
	// Force ignores pull cursors and re-uploads every non-conflicting record.
	Force bool
	// Strategy overrides the default conflict strategy for this cycle.
	Strategy *ResolutionStrategy
}

// PushResult summarises the push pass over one table.
type PushResult struct {
	Table  EntityTable `json:"table"`
	Pushed int         `json:"pushed"`
	Errors []string    `json:"errors,omitempty"`
}

// PullResult summarises the pull pass over one table.
type PullResult struct {
	Table     EntityTable `json:"table"`
	Pulled    int         `json:"pulled"`
	Conflicts []Conflict  `json:"conflicts,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	// Cursor is the highest server write time observed, nil if nothing was
	// received.
	Cursor *time.Time `json:"cursor,omitempty"`
}

// SyncResult aggregates a full sync cycle. Success is true iff Errors is
// empty.
type SyncResult struct {
	Success    bool          `json:"success"`
	Direction  SyncDirection `json:"direction"`
	Force      bool          `json:"force"`
	Pushed     int           `json:"pushed"`
	Pulled     int           `json:"pulled"`
	Conflicts  int           `json:"conflicts"`
	Resolved   int           `json:"resolved"`
	Replayed   int           `json:"replayed"`
	Errors     []string      `json:"errors,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}
