// Copyright (c) 2026 Travelpack. All rights reserved.

package schema

import "strings"

// TravelTripTable represents the 'travel.trip' table
type TravelTripTable struct {
	Table       string
	ID          string
	OwnerID     string
	Destination string
	Purpose     string
	Duration    string
	Weather     string
	TripDate    string
	PackingList string
	TotalWeight string
	CreatedAt   string
	UpdatedAt   string
}

// TravelTrip is the schema definition for travel.trip
var TravelTrip = TravelTripTable{
	Table:       "travel.trip",
	ID:          "id",
	OwnerID:     "ownerid",
	Destination: "destination",
	Purpose:     "purpose",
	Duration:    "duration",
	Weather:     "weather",
	TripDate:    "tripdate",
	PackingList: "packinglist",
	TotalWeight: "totalweight",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all column names in declaration order.
func (t TravelTripTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Destination, t.Purpose, t.Duration, t.Weather,
		t.TripDate, t.PackingList, t.TotalWeight, t.CreatedAt, t.UpdatedAt,
	}
}

// SelectList returns the columns as a SELECT list with the ids and trip date
// rendered as text.
func (t TravelTripTable) SelectList() string {
	return strings.Join([]string{
		t.ID + "::text", t.OwnerID + "::text", t.Destination, t.Purpose, t.Duration, t.Weather,
		t.TripDate + "::text", t.PackingList, t.TotalWeight, t.CreatedAt, t.UpdatedAt,
	}, ", ")
}
