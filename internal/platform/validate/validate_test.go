// Copyright (c) 2026 Travelpack. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "destination", "Kyoto", false},
		{"empty_string", "destination", "", true},
		{"whitespace_only", "destination", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Date checks the trip date format rule.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"iso_date", "2025-04-01", true},
		{"leap_day", "2024-02-29", true},
		{"not_leap_day", "2025-02-29", false},
		{"us_format", "04/01/2025", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("trip_date", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_MaxBytes counts bytes, not runes.
*/
func TestValidator_MaxBytes(t *testing.T) {
	v := &validate.Validator{}
	v.MaxBytes("password", "ééé", 5)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.MaxLen("password", "ééé", 5)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").         // Fails
		MinLen("username", "a", 3).        // Fails
		Date("trip_date", "next tuesday"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
}

/*
TestRequiredError builds the single-field shortcut used by handlers.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("item", "This field is required")

	assert.Equal(t, apperr.CodeValidation, err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "item", err.Details[0].Field)
}
