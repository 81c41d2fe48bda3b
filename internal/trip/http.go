// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelpack/travelpack/internal/platform/constants"
	requestutil "github.com/travelpack/travelpack/internal/platform/request"
	"github.com/travelpack/travelpack/internal/platform/respond"
	"github.com/travelpack/travelpack/internal/platform/validate"
)

// Handler implements the trip endpoints. Every route must be mounted
// behind the authentication gate.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers the trip routes on a router that is already gated.
//
// # Endpoints
//   - GET    /trips
//   - GET    /trips/{trip_id}
//   - POST   /trips
//   - PUT    /edit_trip
//   - DELETE /delete_trip?trip_id=
//   - POST   /generate_packing_list
//   - POST   /edit_packing_list
//   - POST   /add_packing_item
//   - POST   /get_suggestions
func (handler *Handler) Mount(router chi.Router) {
	router.Get("/trips", handler.list)
	router.Get("/trips/{trip_id}", handler.get)
	router.Post("/trips", handler.create)
	router.Put("/edit_trip", handler.edit)
	router.Delete("/delete_trip", handler.delete)
	router.Post("/generate_packing_list", handler.generatePackingList)
	router.Post("/edit_packing_list", handler.editPackingList)
	router.Post("/add_packing_item", handler.addPackingItem)
	router.Post("/get_suggestions", handler.suggestions)
}

// # Trip CRUD

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trips, err := handler.service.List(request.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trips)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.GetOwned(request.Context(), identity.UserID, requestutil.Param(request, "trip_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}

// createRequest is the POST /trips body. OwnerID is accepted for older
// clients and discarded; the owner is always the caller.
type createRequest struct {
	Destination string  `json:"destination"`
	Purpose     string  `json:"purpose"`
	Duration    string  `json:"duration"`
	Weather     string  `json:"weather"`
	TripDate    string  `json:"trip_date"`
	OwnerID     *string `json:"owner_id,omitempty"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.Create(request.Context(), identity.UserID, CreateInput{
		Details: Details{
			Destination: input.Destination,
			Purpose:     input.Purpose,
			Duration:    input.Duration,
			Weather:     input.Weather,
		},
		TripDate: input.TripDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}

type editRequest struct {
	TripID      string  `json:"trip_id"`
	Destination *string `json:"destination"`
	Purpose     *string `json:"purpose"`
	Duration    *string `json:"duration"`
	Weather     *string `json:"weather"`
	TripDate    *string `json:"trip_date"`
	OwnerID     *string `json:"owner_id,omitempty"`
}

func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requireTripID(input.TripID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.UpdateOwned(request.Context(), identity.UserID, input.TripID, Patch{
		Destination: input.Destination,
		Purpose:     input.Purpose,
		Duration:    input.Duration,
		Weather:     input.Weather,
		TripDate:    input.TripDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Trip updated successfully", map[string]any{constants.FieldTrip: trip})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tripID := requestutil.Query(request, "trip_id")
	if err := requireTripID(tripID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteOwned(request.Context(), identity.UserID, tripID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Trip deleted successfully", nil)
}

// # Packing Lists

type generateRequest struct {
	TripID      string `json:"trip_id"`
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
	Duration    string `json:"duration"`
	Weather     string `json:"weather"`
}

func (handler *Handler) generatePackingList(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input generateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requireTripID(input.TripID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.GeneratePackingList(request.Context(), identity.UserID, input.TripID, Details{
		Destination: input.Destination,
		Purpose:     input.Purpose,
		Duration:    input.Duration,
		Weather:     input.Weather,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Packing list generated and added to the trip", map[string]any{
		constants.FieldPackingList: trip.PackingList,
		constants.FieldTotalWeight: trip.TotalWeight,
	})
}

type editPackingListRequest struct {
	TripID string        `json:"trip_id"`
	Items  []PackingItem `json:"items"`
}

func (handler *Handler) editPackingList(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editPackingListRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requireTripID(input.TripID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.ReplacePackingList(request.Context(), identity.UserID, input.TripID, input.Items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Packing list updated", map[string]any{
		"updated_items":            trip.PackingList,
		constants.FieldTotalWeight: trip.TotalWeight,
	})
}

type addPackingItemRequest struct {
	TripID string       `json:"trip_id"`
	Item   *PackingItem `json:"item"`
}

func (handler *Handler) addPackingItem(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addPackingItemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requireTripID(input.TripID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Item == nil {
		respond.Error(writer, request, validate.RequiredError("item", "This field is required"))
		return
	}

	trip, err := handler.service.AddPackingItem(request.Context(), identity.UserID, input.TripID, *input.Item)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Item added to packing list", map[string]any{
		constants.FieldPackingList: trip.PackingList,
		constants.FieldTotalWeight: trip.TotalWeight,
	})
}

// # Suggestions

type suggestionsRequest struct {
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
}

func (handler *Handler) suggestions(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredIdentity(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input suggestionsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestions, err := handler.service.Suggestions(request.Context(), input.Destination, input.Purpose)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"suggestions": suggestions})
}

func requireTripID(tripID string) error {
	v := &validate.Validator{}
	return v.Required("trip_id", tripID).Err()
}
