// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the store.
//
// A [Validator] accepts any supported model and, optionally, the names of
// the fields to check. Every failure wraps [ErrValidation] together with
// the specific reason, so callers can map the whole family to one status
// while tests still match the exact cause.
package validators

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

import "context"

// Validator validates obj, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
