// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidSince is returned when the since query parameter cannot be
	// parsed.
	ErrInvalidSince = errors.New("invalid `since` query parameter")

	// ErrAddressMismatch is returned when a record body names another table
	// or local id than the request URL.
	ErrAddressMismatch = errors.New("record address mismatch")
)
