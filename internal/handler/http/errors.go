// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUserContextMissing is returned when a protected handler runs without
	// the identity the auth middleware stores in the request context.
	ErrUserContextMissing = errors.New("user context is missing")

	// ErrInvalidPathID is returned when an {id} URL parameter is not a
	// positive integer.
	ErrInvalidPathID = errors.New("invalid id in request path")

	// ErrInvalidQuery is returned when a query string parameter cannot be
	// parsed, e.g. a malformed date.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrInvalidJSON is returned when the request body is not the expected
	// JSON document.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
