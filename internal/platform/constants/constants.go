// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token lifetime and issuer.
  - Collaborator: Defaults for the generative-model client.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "travelpack-api"
	AppVersion = "0.1.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout must outlive GlobalRequestTimeout so timeout responses can be written.
	DefaultWriteTimeout = 35 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds database/cache connection and migration at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "travelpack"

	// SessionTokenTTL is how long a session token stays valid after issuance.
	SessionTokenTTL = 24 * time.Hour

	// MinTokenSecretLength is the minimum HMAC secret size accepted at startup.
	MinTokenSecretLength = 32

	// BearerPrefix is the literal scheme prefix of the Authorization header.
	BearerPrefix = "Bearer "
)

// # Generative Collaborator

const (
	// DefaultGeminiModel is used when GEMINI_MODEL is not set.
	DefaultGeminiModel = "gemini-1.5-pro"

	// DefaultCompartment is assigned to generated items without a compartment.
	DefaultCompartment = "Main Compartment"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData        = "data"
	FieldError       = "error"
	FieldCode        = "code"
	FieldMessage     = "message"
	FieldToken       = "token"
	FieldUsername    = "username"
	FieldTrip        = "trip"
	FieldPackingList = "packing_list"
	FieldTotalWeight = "total_weight"
	FieldStatus      = "status"
	FieldChecks      = "checks"
)

// # Database Schemas

const (
	SchemaUsers  = "users"
	SchemaTravel = "travel"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSuggestions = "travel:suggestions:"
)
