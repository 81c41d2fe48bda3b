// Copyright (c) 2026 Travelpack. All rights reserved.

package sec

// Identity is the authenticated caller, resolved by the auth gate from a
// verified token and attached to the request context.
type Identity struct {
	UserID   string
	Username string
}
