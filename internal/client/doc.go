// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires the local store, the remote store adapter, the connectivity
// monitor and the sync engine into a single process lifecycle: one-shot
// sync or a long-running daemon.
package client
