// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks history entries before they are sealed.
//
// A Validator inspects a value and optionally only the named fields of it.
// Services call it before any encryption happens, so a rejected batch leaves
// no partial state behind.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
