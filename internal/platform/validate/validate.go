// Copyright (c) 2026 Travelpack. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Rules never short-circuit: a chain reports every failing field in the
// order the rules were applied, so clients can highlight all of them at once.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/travelpack/travelpack/internal/platform/apperr"
)

// DateLayout is the wire format of calendar dates (trip_date).
const DateLayout = "2006-01-02"

const failedMessage = "Validation failed"

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values. The zero value is ready
// to use; create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails if the value has more than max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// MinLen fails if the value has fewer than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) < min, fmt.Sprintf("Minimum %d characters", min))
}

// MaxBytes fails if the value is longer than max bytes. bcrypt only reads
// the first 72 bytes of a password, whatever the rune count.
func (v *Validator) MaxBytes(field, value string, max int) *Validator {
	return v.Custom(field, len(value) > max, fmt.Sprintf("Maximum %d bytes", max))
}

// Date fails if the value is not a calendar date in [DateLayout].
func (v *Validator) Date(field, value string) *Validator {
	_, err := time.Parse(DateLayout, value)
	return v.Custom(field, err != nil, "Must be a date in YYYY-MM-DD format")
}

// Custom records message against field when failed is true.
//
//	v.Custom("items", len(items) > 500, "At most 500 items")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns a VALIDATION_ERROR carrying every failure, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.errs...)
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}
