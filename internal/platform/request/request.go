// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the body
decoding rules, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/ctxutil"
	"github.com/travelpack/travelpack/internal/platform/sec"
	"github.com/travelpack/travelpack/internal/platform/validate"
)

// maxBodyBytes caps request bodies; packing lists are the largest payload.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields and trailing data are rejected so malformed input never
reaches business logic.

Returns:
  - error: a VALIDATION_ERROR [apperr.AppError] if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return decodeError(err)
	}

	if decoder.More() {
		return validate.ErrInvalidJSON
	}

	return nil
}

// decodeError names the offending field where the decoder tells us one.
func decodeError(err error) error {
	const unknownPrefix = "json: unknown field "
	if message := err.Error(); strings.HasPrefix(message, unknownPrefix) {
		field := strings.Trim(strings.TrimPrefix(message, unknownPrefix), `"`)
		return apperr.ValidationError("Invalid JSON payload", apperr.FieldError{
			Field:   field,
			Message: "Unknown field",
		})
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) && typeError.Field != "" {
		return apperr.ValidationError("Invalid JSON payload", apperr.FieldError{
			Field:   typeError.Field,
			Message: "Must be of type " + typeError.Type.String(),
		})
	}

	return validate.ErrInvalidJSON
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a trimmed query-string parameter from the request.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
RequiredIdentity ensures the request passed the auth gate and returns the caller.

Returns:
  - *sec.Identity: The authenticated caller
  - error: a MISSING_TOKEN [apperr.AppError] if the gate was bypassed
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.TokenRejected(apperr.CodeMissingToken, sec.ErrTokenMissing)
	}
	return identity, nil
}
