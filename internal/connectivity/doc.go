// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tells the sync engine whether the remote store can be
// reached.
//
// A [Monitor] probes the remote store on a fixed interval and notifies its
// subscribers only when the answer changes, so a flapping network produces
// one callback per transition instead of one per probe.
package connectivity
