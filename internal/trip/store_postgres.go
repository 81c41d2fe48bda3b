// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/database/schema"
	"github.com/travelpack/travelpack/internal/platform/dberr"
	"github.com/travelpack/travelpack/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on the travel.trip table.
//
// # Schema
//
// packinglist is a JSONB array and totalweight a float column; both are
// only ever written together. Every statement after INSERT carries
// "ownerid = $2" next to the primary key.
type PostgresRepository struct {
	db  postgres.DBTX
	now func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const resourceName = "Trip"

// tripTable is shorthand for the trip schema in the queries below.
var tripTable = schema.TravelTrip

// Create inserts a new trip with an empty packing list.
func (repository *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::jsonb, $9, $10, $10)`,
		tripTable.Table, strings.Join(tripTable.Columns(), ", "),
	)

	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = repository.now()
	}
	trip.UpdatedAt = trip.CreatedAt
	if trip.PackingList == nil {
		trip.PackingList = []PackingItem{}
	}

	list, err := encodeItems(trip.PackingList)
	if err != nil {
		return err
	}

	_, err = repository.db.Exec(ctx, query,
		trip.ID,
		trip.OwnerID,
		trip.Destination,
		trip.Purpose,
		trip.Duration,
		trip.Weather,
		trip.TripDate,
		list,
		trip.TotalWeight,
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_create_failed: %w", dberr.Wrap(err, resourceName))
	}

	return nil
}

// ListByOwner returns the owner's trips, soonest first.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Trip, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC`,
		tripTable.SelectList(), tripTable.Table, tripTable.OwnerID, tripTable.TripDate, tripTable.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_trip_repo_list_failed: %w", apperr.Internal(err))
	}
	defer rows.Close()

	trips := make([]Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_trip_repo_list_scan_failed: %w", apperr.Internal(err))
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_trip_repo_list_rows_failed: %w", apperr.Internal(err))
	}

	return trips, nil
}

// FindOwned loads one trip scoped to its owner.
func (repository *PostgresRepository) FindOwned(ctx context.Context, ownerID, id string) (*Trip, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM %s
		WHERE %s`,
		tripTable.SelectList(), tripTable.Table, ownedPredicate(),
	)

	trip, err := scanTrip(repository.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return trip, nil
}

// UpdateOwned applies the non-nil patch fields in one statement.
func (repository *PostgresRepository) UpdateOwned(ctx context.Context, ownerID, id string, patch Patch) (*Trip, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = COALESCE($3, %[2]s),
			%[3]s = COALESCE($4, %[3]s),
			%[4]s = COALESCE($5, %[4]s),
			%[5]s = COALESCE($6, %[5]s),
			%[6]s = COALESCE($7::date, %[6]s),
			%[7]s = $8
		WHERE %[8]s
		RETURNING %[9]s`,
		tripTable.Table, tripTable.Destination, tripTable.Purpose, tripTable.Duration, tripTable.Weather,
		tripTable.TripDate, tripTable.UpdatedAt, ownedPredicate(), tripTable.SelectList(),
	)

	trip, err := scanTrip(repository.db.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Destination,
		patch.Purpose,
		patch.Duration,
		patch.Weather,
		patch.TripDate,
		repository.now(),
	))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return trip, nil
}

// ReplacePackingList writes the list and its recomputed total together.
func (repository *PostgresRepository) ReplacePackingList(ctx context.Context, ownerID, id string, items []PackingItem) (*Trip, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $3::jsonb,
			%s = $4,
			%s = $5
		WHERE %s
		RETURNING %s`,
		tripTable.Table, tripTable.PackingList, tripTable.TotalWeight, tripTable.UpdatedAt,
		ownedPredicate(), tripTable.SelectList(),
	)

	if items == nil {
		items = []PackingItem{}
	}
	list, err := encodeItems(items)
	if err != nil {
		return nil, err
	}

	trip, err := scanTrip(repository.db.QueryRow(ctx, query, id, ownerID, list, TotalWeight(items), repository.now()))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return trip, nil
}

// AppendPackingItem concatenates one item onto the list and adds its weight
// to the stored total in the same statement.
func (repository *PostgresRepository) AppendPackingItem(ctx context.Context, ownerID, id string, item PackingItem) (*Trip, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = %[2]s || $3::jsonb,
			%[3]s = %[3]s + $4,
			%[4]s = $5
		WHERE %[5]s
		RETURNING %[6]s`,
		tripTable.Table, tripTable.PackingList, tripTable.TotalWeight, tripTable.UpdatedAt,
		ownedPredicate(), tripTable.SelectList(),
	)

	list, err := encodeItems([]PackingItem{item})
	if err != nil {
		return nil, err
	}

	trip, err := scanTrip(repository.db.QueryRow(ctx, query, id, ownerID, list, TotalWeight([]PackingItem{item}), repository.now()))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return trip, nil
}

// DeleteOwned removes a trip. Zero affected rows means not found or not owned.
func (repository *PostgresRepository) DeleteOwned(ctx context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s`, tripTable.Table, ownedPredicate())

	tag, err := repository.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_delete_failed: %w", dberr.Wrap(err, resourceName))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// ownedPredicate matches one trip by id ($1) and owner ($2).
func ownedPredicate() string {
	return fmt.Sprintf("%s = $1 AND %s = $2", tripTable.ID, tripTable.OwnerID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	trip := &Trip{}
	var list []byte

	err := row.Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Destination,
		&trip.Purpose,
		&trip.Duration,
		&trip.Weather,
		&trip.TripDate,
		&list,
		&trip.TotalWeight,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip.PackingList = []PackingItem{}
	if len(list) > 0 {
		if err := json.Unmarshal(list, &trip.PackingList); err != nil {
			return nil, fmt.Errorf("decode packing list: %w", err)
		}
	}

	return trip, nil
}

func encodeItems(items []PackingItem) (string, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("postgres_trip_repo_encode_failed: %w", apperr.Internal(err))
	}
	return string(encoded), nil
}
