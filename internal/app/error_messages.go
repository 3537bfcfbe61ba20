// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the remote store server
// writes into error response bodies.
//
// The client adapter surfaces these strings inside its own errors, so the
// wording is part of the API and kept in one place.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded body fails
	// validation (missing fields, wrong types, oversized payload).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match any account. Unknown login and wrong password share it.
	MsgInvalidLoginPassword = "invalid login/password"

	MsgLoginAlreadyExists = "login already exists"

	MsgInternalServerError = "internal server error"

	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnknownTable is returned when {table} names no entity table.
	MsgUnknownTable = "unknown entity table"

	// MsgInvalidSince is returned when the since query parameter is not an
	// RFC 3339 timestamp.
	MsgInvalidSince = "since must be an RFC 3339 timestamp"

	// MsgRecordNotFound is returned when the owner has no record with the
	// requested table and local id.
	MsgRecordNotFound = "record not found"

	// MsgRecordAlreadyExists is returned on insert of a local id the owner
	// already pushed. The client falls back to an update.
	MsgRecordAlreadyExists = "record already exists"

	// MsgRecordAddressMismatch is returned when the body names a different
	// table or local id than the URL.
	MsgRecordAddressMismatch = "record address in body does not match the URL"

	MsgNotFound = "not found"
)
