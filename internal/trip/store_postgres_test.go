// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelpack/travelpack/internal/platform/apperr"
)

const (
	ownerID = "0190a6c4-0000-7000-8000-00000000a11c"
	tripID  = "0190a6c4-7d2e-7b3a-9c1d-2e3f4a5b6c7d"
)

var (
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	columns  = []string{"id", "ownerid", "destination", "purpose", "duration", "weather",
		"tripdate", "packinglist", "totalweight", "createdat", "updatedat"}
)

func newMockTripRepository(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repository := NewPostgresRepository(mock)
	repository.now = func() time.Time { return fixedNow }
	return repository, mock
}

func tripRow(list string, total float64) *pgxmock.Rows {
	return pgxmock.NewRows(columns).AddRow(
		tripID, ownerID, "Kyoto", "leisure", "5 days", "mild",
		"2025-04-01", []byte(list), total, fixedNow, fixedNow,
	)
}

func TestPostgresRepository_Create(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO travel.trip")).
		WithArgs(tripID, ownerID, "Kyoto", "leisure", "5 days", "mild", "2025-04-01", "[]", 0.0, fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	trip := &Trip{ID: tripID, OwnerID: ownerID, Destination: "Kyoto", Purpose: "leisure",
		Duration: "5 days", Weather: "mild", TripDate: "2025-04-01"}
	require.NoError(t, repository.Create(context.Background(), trip))

	assert.Equal(t, fixedNow, trip.CreatedAt)
	assert.NotNil(t, trip.PackingList)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByOwner(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectQuery(`WHERE ownerid = \$1\s+ORDER BY tripdate ASC, createdat ASC`).
		WithArgs(ownerID).
		WillReturnRows(tripRow(`[{"name":"Hat","checked":true,"compartment":"Top","weight":80}]`, 80))

	trips, err := repository.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, ownerID, trips[0].OwnerID)
	require.Len(t, trips[0].PackingList, 1)
	assert.True(t, trips[0].PackingList[0].Checked)
	assert.Equal(t, 80.0, *trips[0].PackingList[0].Weight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByOwnerEmpty(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectQuery(`WHERE ownerid = \$1`).
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows(columns))

	trips, err := repository.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestPostgresRepository_FindOwnedScopesByOwner(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND ownerid = $2")).
		WithArgs(tripID, "someone-else").
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindOwned(context.Background(), "someone-else", tripID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateOwned(t *testing.T) {
	repository, mock := newMockTripRepository(t)
	destination := "Nara"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE travel.trip SET")).
		WithArgs(tripID, ownerID, &destination, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), fixedNow).
		WillReturnRows(tripRow(`[]`, 0))

	updated, err := repository.UpdateOwned(context.Background(), ownerID, tripID, Patch{Destination: &destination})
	require.NoError(t, err)
	assert.Equal(t, tripID, updated.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ReplacePackingListWritesTotal(t *testing.T) {
	repository, mock := newMockTripRepository(t)
	w := func(grams float64) *float64 { return &grams }
	items := []PackingItem{{Name: "Camera", Weight: w(500)}, {Name: "Jacket", Weight: w(1200)}, {Name: "Passport"}}

	mock.ExpectQuery(`packinglist = \$3::jsonb,\s+totalweight = \$4`).
		WithArgs(tripID, ownerID, pgxmock.AnyArg(), 1700.0, fixedNow).
		WillReturnRows(tripRow(
			`[{"name":"Camera","checked":false,"compartment":"","weight":500},`+
				`{"name":"Jacket","checked":false,"compartment":"","weight":1200},`+
				`{"name":"Passport","checked":false,"compartment":""}]`, 1700))

	updated, err := repository.ReplacePackingList(context.Background(), ownerID, tripID, items)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, updated.TotalWeight)
	assert.Len(t, updated.PackingList, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_PackingListKeepsItemExtras(t *testing.T) {
	repository, mock := newMockTripRepository(t)
	stored := `[{"category":"tech","checked":false,"compartment":"","name":"Camera"}]`
	item := PackingItem{Name: "Camera", Extra: map[string]json.RawMessage{"category": json.RawMessage(`"tech"`)}}

	mock.ExpectQuery(`packinglist = \$3::jsonb`).
		WithArgs(tripID, ownerID, stored, 0.0, fixedNow).
		WillReturnRows(tripRow(stored, 0))

	updated, err := repository.ReplacePackingList(context.Background(), ownerID, tripID, []PackingItem{item})
	require.NoError(t, err)
	require.Len(t, updated.PackingList, 1)
	assert.Equal(t, "Camera", updated.PackingList[0].Name)
	assert.JSONEq(t, `"tech"`, string(updated.PackingList[0].Extra["category"]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AppendPackingItem(t *testing.T) {
	repository, mock := newMockTripRepository(t)
	w := 250.0

	mock.ExpectQuery(`packinglist = packinglist \|\| \$3::jsonb,\s+totalweight = totalweight \+ \$4`).
		WithArgs(tripID, ownerID, `[{"name":"Hat","checked":false,"compartment":"Top","weight":250}]`, 250.0, fixedNow).
		WillReturnRows(tripRow(`[{"name":"Hat","checked":false,"compartment":"Top","weight":250}]`, 250))

	updated, err := repository.AppendPackingItem(context.Background(), ownerID, tripID, PackingItem{Name: "Hat", Compartment: "Top", Weight: &w})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.TotalWeight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteOwned(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM travel.trip WHERE id = $1 AND ownerid = $2")).
		WithArgs(tripID, ownerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM travel.trip WHERE id = $1 AND ownerid = $2")).
		WithArgs(tripID, "someone-else").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repository.DeleteOwned(context.Background(), ownerID, tripID))

	err := repository.DeleteOwned(context.Background(), "someone-else", tripID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_QueryFailureIsInternal(t *testing.T) {
	repository, mock := newMockTripRepository(t)

	mock.ExpectQuery(`WHERE ownerid = \$1`).
		WithArgs(ownerID).
		WillReturnError(errors.New("connection reset"))

	_, err := repository.ListByOwner(context.Background(), ownerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}
