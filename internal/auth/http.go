// Copyright (c) 2026 Travelpack. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelpack/travelpack/internal/platform/constants"
	requestutil "github.com/travelpack/travelpack/internal/platform/request"
	"github.com/travelpack/travelpack/internal/platform/respond"
	"github.com/travelpack/travelpack/internal/platform/validate"
)

// Handler implements the public account endpoints.
//
// They contain no business logic; see [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers the account routes on router.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Verifies credentials and returns a session token.
func (handler *Handler) Mount(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register handles POST /register.
//
// # Returns
//   - 200 {message} on success.
//   - 400 VALIDATION_ERROR or DUPLICATE_USERNAME.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Register(request.Context(), RegisterInput(input)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "User registered successfully", nil)
}

// login handles POST /login.
//
// # Returns
//   - 200 {token, username} on success.
//   - 400 if either field is missing.
//   - 401 INVALID_CREDENTIALS without saying which part was wrong.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldUsername, input.Username).Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
