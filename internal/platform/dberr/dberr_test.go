// Copyright (c) 2026 Travelpack. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique_violation", uniqueViolation, apperr.CodeConflict},
		{"connection_refused", errors.New("dial tcp: connection refused"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Trip"), tt.wantCode))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Trip"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}
