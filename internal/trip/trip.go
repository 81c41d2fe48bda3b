// Copyright (c) 2026 Travelpack. All rights reserved.

// Package trip implements owner-scoped trip records and their packing lists.
//
// # Ownership
//
// Every read and write is keyed by (owner, trip id). A trip that exists but
// belongs to someone else is indistinguishable from one that does not exist:
// both are [apperr.NotFound].
//
// # Packing lists
//
// Items are opaque to this package beyond their weight. total_weight is
// recomputed and written in the same UPDATE as the list it summarises.
package trip

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/travelpack/travelpack/internal/platform/constants"
	"github.com/travelpack/travelpack/internal/platform/validate"
	"github.com/travelpack/travelpack/pkg/pointer"
	"github.com/travelpack/travelpack/pkg/slice"
)

// Field bounds for free-text trip details.
const (
	maxDetailLength   = 200
	maxItemNameLength = 200
	maxItems          = 500
)

// Trip is a planned journey owned by exactly one user.
type Trip struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Destination string        `json:"destination"`
	Purpose     string        `json:"purpose"`
	Duration    string        `json:"duration"`
	Weather     string        `json:"weather"`
	TripDate    string        `json:"trip_date"`
	PackingList []PackingItem `json:"packing_list"`
	TotalWeight float64       `json:"total_weight"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PackingItem is one entry of a packing list. Weight is optional and counts
// as zero when absent.
//
// Keys other than the four below are kept in Extra and written back
// unchanged, so clients may attach their own fields to an item.
type PackingItem struct {
	Name        string   `json:"name"`
	Checked     bool     `json:"checked"`
	Compartment string   `json:"compartment"`
	Weight      *float64 `json:"weight,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// packingItemFields has PackingItem's fields without its JSON methods.
type packingItemFields PackingItem

var knownItemKeys = []string{"name", "checked", "compartment", "weight"}

// UnmarshalJSON decodes the known keys and collects the rest into Extra.
func (item *PackingItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var fields packingItemFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, key := range knownItemKeys {
		delete(raw, key)
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}

	*item = PackingItem(fields)
	return nil
}

// MarshalJSON writes the known keys plus Extra. A known key always wins over
// an Extra entry of the same name.
func (item PackingItem) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(packingItemFields(item))
	if err != nil || len(item.Extra) == 0 {
		return encoded, err
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &known); err != nil {
		return nil, err
	}

	merged := make(map[string]json.RawMessage, len(item.Extra)+len(known))
	for key, value := range item.Extra {
		merged[key] = value
	}
	for key, value := range known {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// Details are the descriptive fields a trip is created with and that
// prompts are built from.
type Details struct {
	Destination string
	Purpose     string
	Duration    string
	Weather     string
}

// CreateInput holds the fields for a new trip. The owner always comes from
// the authenticated caller.
type CreateInput struct {
	Details
	TripDate string
}

// Validate checks every field is present and trip_date is a calendar date.
func (input CreateInput) Validate() error {
	v := &validate.Validator{}
	validateDetail(v, "destination", input.Destination)
	validateDetail(v, "purpose", input.Purpose)
	validateDetail(v, "duration", input.Duration)
	validateDetail(v, "weather", input.Weather)
	v.Required("trip_date", input.TripDate)
	if strings.TrimSpace(input.TripDate) != "" {
		v.Date("trip_date", input.TripDate)
	}
	return v.Err()
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Destination *string
	Purpose     *string
	Duration    *string
	Weather     *string
	TripDate    *string
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Destination == nil && patch.Purpose == nil && patch.Duration == nil &&
		patch.Weather == nil && patch.TripDate == nil
}

// Validate checks every provided field. An empty patch is rejected.
func (patch Patch) Validate() error {
	v := &validate.Validator{}
	v.Custom("trip", patch.IsEmpty(), "At least one field must be provided")
	fields := []struct {
		name  string
		value *string
	}{
		{"destination", patch.Destination},
		{"purpose", patch.Purpose},
		{"duration", patch.Duration},
		{"weather", patch.Weather},
	}
	for _, field := range fields {
		if field.value != nil {
			validateDetail(v, field.name, *field.value)
		}
	}
	if patch.TripDate != nil {
		v.Date("trip_date", *patch.TripDate)
	}
	return v.Err()
}

func validateDetail(v *validate.Validator, field, value string) {
	v.Required(field, value).MaxLen(field, value, maxDetailLength)
}

// ValidateItems checks the size of a full packing list and each item in it.
// Items are otherwise opaque: a client list may carry unnamed entries.
func ValidateItems(field string, items []PackingItem) error {
	v := &validate.Validator{}
	v.Custom(field, len(items) > maxItems, "Too many items")
	for _, item := range items {
		validateItem(v, field, item)
	}
	return v.Err()
}

// ValidateItem checks a single packing item.
func ValidateItem(field string, item PackingItem) error {
	v := &validate.Validator{}
	validateItem(v, field, item)
	return v.Err()
}

func validateItem(v *validate.Validator, field string, item PackingItem) {
	v.Custom(field, len([]rune(item.Name)) > maxItemNameLength, "Item name is too long").
		Custom(field, item.Weight != nil && *item.Weight < 0, "Item weight cannot be negative")
}

// TotalWeight sums item weights, treating a missing weight as zero.
func TotalWeight(items []PackingItem) float64 {
	return slice.Reduce(items, 0.0, func(total float64, item PackingItem) float64 {
		return total + pointer.Val(item.Weight)
	})
}

// withDefaultCompartment fills an empty compartment with the default one.
func withDefaultCompartment(items []PackingItem) []PackingItem {
	for i := range items {
		if strings.TrimSpace(items[i].Compartment) == "" {
			items[i].Compartment = constants.DefaultCompartment
		}
	}
	return items
}

// merge returns details with empty fields taken from fallback.
func (details Details) merge(fallback Details) Details {
	pick := func(value, otherwise string) string {
		if strings.TrimSpace(value) != "" {
			return value
		}
		return otherwise
	}
	return Details{
		Destination: pick(details.Destination, fallback.Destination),
		Purpose:     pick(details.Purpose, fallback.Purpose),
		Duration:    pick(details.Duration, fallback.Duration),
		Weather:     pick(details.Weather, fallback.Weather),
	}
}

func (t *Trip) details() Details {
	return Details{
		Destination: t.Destination,
		Purpose:     t.Purpose,
		Duration:    t.Duration,
		Weather:     t.Weather,
	}
}
