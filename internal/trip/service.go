// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/travelpack/travelpack/internal/generative"
	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/ctxutil"
	"github.com/travelpack/travelpack/internal/platform/metrics"
	"github.com/travelpack/travelpack/internal/platform/validate"
	"github.com/travelpack/travelpack/pkg/slug"
	"github.com/travelpack/travelpack/pkg/uuidv7"
)

// Collaborator turns a prompt into text. It is the generative model seen
// from this package.
type Collaborator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Collaborator operation labels.
const (
	operationPackingList = "packing_list"
	operationSuggestions = "suggestions"
)

// CacheObserver receives one event per suggestion cache lookup.
type CacheObserver interface {
	ObserveCacheLookup(result string)
}

// Service implements the trip use cases. Every method takes the caller's
// user id and never touches another owner's rows.
type Service struct {
	trips        Repository
	collaborator Collaborator
	cache        SuggestionCache
	observer     CacheObserver
	logger       *slog.Logger
}

// Option configures optional [Service] dependencies.
type Option func(*Service)

// WithSuggestionCache enables caching of suggestions.
func WithSuggestionCache(cache SuggestionCache) Option {
	return func(service *Service) { service.cache = cache }
}

// WithCacheObserver reports cache hits and misses.
func WithCacheObserver(observer CacheObserver) Option {
	return func(service *Service) { service.observer = observer }
}

// NewService constructs a [Service].
func NewService(trips Repository, collaborator Collaborator, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		trips:        trips,
		collaborator: collaborator,
		logger:       logger,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Trip CRUD

// Create stores a new trip for ownerID with an empty packing list.
func (service *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*Trip, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	trip := &Trip{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Destination: strings.TrimSpace(input.Destination),
		Purpose:     strings.TrimSpace(input.Purpose),
		Duration:    strings.TrimSpace(input.Duration),
		Weather:     strings.TrimSpace(input.Weather),
		TripDate:    strings.TrimSpace(input.TripDate),
		PackingList: []PackingItem{},
	}

	if err := service.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("trip_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "trip_created",
		slog.String("trip_id", trip.ID),
		slog.String("owner_id", ownerID),
	)

	return trip, nil
}

// List returns the owner's trips ordered by date. The slice is never nil.
func (service *Service) List(ctx context.Context, ownerID string) ([]Trip, error) {
	trips, err := service.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

// GetOwned returns one trip. Malformed ids are reported as not found.
func (service *Service) GetOwned(ctx context.Context, ownerID, tripID string) (*Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	return service.trips.FindOwned(ctx, ownerID, id)
}

// UpdateOwned applies a partial update.
func (service *Service) UpdateOwned(ctx context.Context, ownerID, tripID string, patch Patch) (*Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	trip, err := service.trips.UpdateOwned(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "trip_updated", slog.String("trip_id", id))
	return trip, nil
}

// DeleteOwned removes a trip.
func (service *Service) DeleteOwned(ctx context.Context, ownerID, tripID string) error {
	id, err := parseTripID(tripID)
	if err != nil {
		return err
	}
	if err := service.trips.DeleteOwned(ctx, ownerID, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "trip_deleted", slog.String("trip_id", id))
	return nil
}

// # Packing Lists

// ReplacePackingList overwrites the packing list and recomputes the weight.
func (service *Service) ReplacePackingList(ctx context.Context, ownerID, tripID string, items []PackingItem) (*Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return nil, validate.RequiredError("items", "This field is required")
	}
	if err := ValidateItems("items", items); err != nil {
		return nil, err
	}

	return service.trips.ReplacePackingList(ctx, ownerID, id, items)
}

// AddPackingItem appends one item and adds its weight to the total.
func (service *Service) AddPackingItem(ctx context.Context, ownerID, tripID string, item PackingItem) (*Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	if err := ValidateItem("item", item); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(item.Name)

	return service.trips.AppendPackingItem(ctx, ownerID, id, item)
}

// GeneratePackingList asks the collaborator for a packing list and stores it.
//
// # Flow
//  1. Load the trip (404 before any upstream call).
//  2. Fill blank details from the stored trip.
//  3. Call the collaborator and parse its reply.
//  4. Replace the stored list only after a parseable reply.
func (service *Service) GeneratePackingList(ctx context.Context, ownerID, tripID string, overrides Details) (*Trip, error) {
	// ── 1. Ownership ──────────────────────────────────────────────────────

	trip, err := service.GetOwned(ctx, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	// ── 2. Prompt ─────────────────────────────────────────────────────────

	details := overrides.merge(trip.details())

	// ── 3. Collaborator ───────────────────────────────────────────────────

	reply, err := service.collaborator.Generate(generative.WithOperation(ctx, operationPackingList), packingListPrompt(details))
	if err != nil {
		return nil, apperr.CollaboratorFailure("Failed to generate packing list", err)
	}

	items, err := parsePackingList(reply)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "packing_list_unparseable",
			slog.String("trip_id", trip.ID),
			slog.Int("reply_length", len(reply)),
		)
		return nil, apperr.CollaboratorFailure("Failed to parse packing list", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	updated, err := service.trips.ReplacePackingList(ctx, ownerID, trip.ID, items)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "packing_list_generated",
		slog.String("trip_id", trip.ID),
		slog.Int("items", len(items)),
	)

	return updated, nil
}

// # Suggestions

// Suggestions returns free-text travel tips for a destination and purpose.
// Nothing is persisted on the trip.
func (service *Service) Suggestions(ctx context.Context, destination, purpose string) (string, error) {
	v := &validate.Validator{}
	v.Required("destination", destination).MaxLen("destination", destination, maxDetailLength).
		MaxLen("purpose", purpose, maxDetailLength)
	if err := v.Err(); err != nil {
		return "", err
	}

	key := slug.Key(destination, purpose)
	if cached, ok := service.cachedSuggestions(ctx, key); ok {
		return cached, nil
	}

	suggestions, err := service.collaborator.Generate(generative.WithOperation(ctx, operationSuggestions), suggestionsPrompt(destination, purpose))
	if err != nil {
		return "", apperr.CollaboratorFailure("Failed to generate suggestions", err)
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, key, suggestions); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "suggestion_cache_set_failed", slog.String("error", err.Error()))
		}
	}

	return suggestions, nil
}

func (service *Service) cachedSuggestions(ctx context.Context, key string) (string, bool) {
	if service.cache == nil {
		return "", false
	}

	value, found, err := service.cache.Get(ctx, key)
	switch {
	case err != nil:
		service.observe(metrics.CacheError)
		ctxutil.GetLogger(ctx).WarnContext(ctx, "suggestion_cache_get_failed", slog.String("error", err.Error()))
		return "", false
	case !found:
		service.observe(metrics.CacheMiss)
		return "", false
	default:
		service.observe(metrics.CacheHit)
		return value, true
	}
}

func (service *Service) observe(result string) {
	if service.observer != nil {
		service.observer.ObserveCacheLookup(result)
	}
}

// parseTripID canonicalizes a client-supplied id. Anything that is not a
// UUID cannot name a stored trip, so it is reported as not found.
func parseTripID(tripID string) (string, error) {
	id, ok := uuidv7.Canonical(strings.TrimSpace(tripID))
	if !ok {
		return "", apperr.NotFound(resourceName)
	}
	return id, nil
}
