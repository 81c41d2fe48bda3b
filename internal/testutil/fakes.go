// Copyright (c) 2026 Travelpack. All rights reserved.

// Package testutil provides in-memory fakes of the storage and collaborator
// interfaces for service and HTTP tests.
//
// The fakes follow the same contracts as the Postgres repositories: lookups
// are owner-scoped and misses return [apperr.NotFound].
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/travelpack/travelpack/internal/auth"
	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/trip"
	"github.com/travelpack/travelpack/pkg/pointer"
)

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Users

// UserRepository is an in-memory [auth.UserRepository].
type UserRepository struct {
	mu    sync.Mutex
	users map[string]auth.User

	// Err, when set, is returned by every method.
	Err error
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]auth.User)}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	user, ok := r.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (r *UserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, taken := r.users[user.Username]; taken {
		return apperr.DuplicateUsername()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.Username] = *user
	return nil
}

// Delete removes an account, for tests of tokens outliving their user.
func (r *UserRepository) Delete(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, username)
}

// Count returns the number of stored accounts.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// # Trips

// TripRepository is an in-memory [trip.Repository].
type TripRepository struct {
	mu    sync.Mutex
	trips map[string]trip.Trip
	now   func() time.Time
}

// NewTripRepository returns an empty repository.
func NewTripRepository() *TripRepository {
	return &TripRepository{
		trips: make(map[string]trip.Trip),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *TripRepository) Create(_ context.Context, t *trip.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.now()
	}
	t.UpdatedAt = t.CreatedAt
	if t.PackingList == nil {
		t.PackingList = []trip.PackingItem{}
	}
	r.trips[t.ID] = clone(*t)
	return nil
}

func (r *TripRepository) ListByOwner(_ context.Context, ownerID string) ([]trip.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := make([]trip.Trip, 0)
	for _, t := range r.trips {
		if t.OwnerID == ownerID {
			trips = append(trips, clone(t))
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].TripDate != trips[j].TripDate {
			return trips[i].TripDate < trips[j].TripDate
		}
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *TripRepository) FindOwned(_ context.Context, ownerID, id string) (*trip.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, id)
	if !ok {
		return nil, apperr.NotFound("Trip")
	}
	result := clone(t)
	return &result, nil
}

func (r *TripRepository) UpdateOwned(_ context.Context, ownerID, id string, patch trip.Patch) (*trip.Trip, error) {
	return r.mutate(ownerID, id, func(t *trip.Trip) {
		t.Destination = pointer.Fallback(patch.Destination, t.Destination)
		t.Purpose = pointer.Fallback(patch.Purpose, t.Purpose)
		t.Duration = pointer.Fallback(patch.Duration, t.Duration)
		t.Weather = pointer.Fallback(patch.Weather, t.Weather)
		t.TripDate = pointer.Fallback(patch.TripDate, t.TripDate)
	})
}

func (r *TripRepository) ReplacePackingList(_ context.Context, ownerID, id string, items []trip.PackingItem) (*trip.Trip, error) {
	return r.mutate(ownerID, id, func(t *trip.Trip) {
		t.PackingList = append([]trip.PackingItem{}, items...)
		t.TotalWeight = trip.TotalWeight(items)
	})
}

func (r *TripRepository) AppendPackingItem(_ context.Context, ownerID, id string, item trip.PackingItem) (*trip.Trip, error) {
	return r.mutate(ownerID, id, func(t *trip.Trip) {
		t.PackingList = append(t.PackingList, item)
		t.TotalWeight += trip.TotalWeight([]trip.PackingItem{item})
	})
}

func (r *TripRepository) DeleteOwned(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(ownerID, id); !ok {
		return apperr.NotFound("Trip")
	}
	delete(r.trips, id)
	return nil
}

// Get returns a trip regardless of owner, for assertions.
func (r *TripRepository) Get(id string) (trip.Trip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	return clone(t), ok
}

func (r *TripRepository) owned(ownerID, id string) (trip.Trip, bool) {
	t, ok := r.trips[id]
	if !ok || t.OwnerID != ownerID {
		return trip.Trip{}, false
	}
	return t, true
}

func (r *TripRepository) mutate(ownerID, id string, change func(*trip.Trip)) (*trip.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, id)
	if !ok {
		return nil, apperr.NotFound("Trip")
	}
	t = clone(t)
	change(&t)
	t.UpdatedAt = r.now()
	r.trips[id] = t

	result := clone(t)
	return &result, nil
}

// clone deep-copies a trip through JSON so callers never share item slices.
func clone(t trip.Trip) trip.Trip {
	encoded, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}
	var copied trip.Trip
	if err := json.Unmarshal(encoded, &copied); err != nil {
		panic(err)
	}
	if copied.PackingList == nil {
		copied.PackingList = []trip.PackingItem{}
	}
	return copied
}

// # Collaborator

// Collaborator is a scripted generative model.
type Collaborator struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Prompts []string
}

func (c *Collaborator) Generate(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Reply, nil
}

// Calls returns how many prompts were sent.
func (c *Collaborator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}

// # Suggestion cache

// SuggestionCache is an in-memory [trip.SuggestionCache].
type SuggestionCache struct {
	mu      sync.Mutex
	entries map[string]string

	// Err, when set, is returned by every method.
	Err error
}

// NewSuggestionCache returns an empty cache.
func NewSuggestionCache() *SuggestionCache {
	return &SuggestionCache{entries: make(map[string]string)}
}

func (c *SuggestionCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", false, c.Err
	}
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *SuggestionCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.entries[key] = value
	return nil
}
