// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"context"
)

// Repository defines owner-scoped persistence for trips.
//
// # Contract
//
// Every method except Create takes the owner's id and must filter on it.
// Not-found and not-owned both return [apperr.NotFound]. Packing-list writes
// store the list and its total weight in one atomic statement.
type Repository interface {
	// Create persists a new trip. OwnerID must already be set.
	Create(ctx context.Context, trip *Trip) error

	// ListByOwner returns the owner's trips ordered by trip date, then creation time.
	ListByOwner(ctx context.Context, ownerID string) ([]Trip, error)

	// FindOwned returns one trip if the owner holds it.
	FindOwned(ctx context.Context, ownerID, id string) (*Trip, error)

	// UpdateOwned applies a partial update and returns the stored result.
	UpdateOwned(ctx context.Context, ownerID, id string, patch Patch) (*Trip, error)

	// ReplacePackingList overwrites the list and total weight.
	ReplacePackingList(ctx context.Context, ownerID, id string, items []PackingItem) (*Trip, error)

	// AppendPackingItem adds one item to the end of the list and its weight to the total.
	AppendPackingItem(ctx context.Context, ownerID, id string, item PackingItem) (*Trip, error)

	// DeleteOwned removes a trip.
	DeleteOwned(ctx context.Context, ownerID, id string) error
}
