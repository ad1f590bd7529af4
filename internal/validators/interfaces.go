// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators turns decoded request bodies and query filters into
// accepted values or a [*ValidationError] listing every field-level
// violation.
//
// Usage patterns:
//  1. Inject a Validator into services.
//  2. Call Validate with context, value, and optional field names to restrict
//     the check to those fields.
//  3. Match failures with errors.Is(err, ErrValidation) and read the field
//     list with errors.As.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
