// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request bodies of the remote store API before
// they reach the service layer.
//
// A [Validator] accepts an arbitrary value and an optional list of field
// names. Without fields every rule of the value's type is applied; with
// fields only the named rules run, so a handler can check exactly what a
// route needs (e.g. a DELETE only carries table and local id).
package validators

import "context"

// Validator validates obj, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
