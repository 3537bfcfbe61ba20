// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is a runnable sync client.
type Client interface {
	// Run signs in, then either syncs once or keeps syncing in the
	// background until the process is interrupted. It returns the error of
	// the one-shot cycle, or nil when the daemon stops.
	Run() error
}
