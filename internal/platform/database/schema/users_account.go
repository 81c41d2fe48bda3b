// Copyright (c) 2026 Travelpack. All rights reserved.

// Package schema names the tables and columns the repositories query.
package schema

import "strings"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Password  string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Password:  "passwordhash",
	CreatedAt: "createdat",
}

// Columns returns all column names in declaration order.
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Password, t.CreatedAt}
}

// SelectList returns the columns as a SELECT list with the id rendered as text.
func (t UserAccountTable) SelectList() string {
	columns := t.Columns()
	columns[0] += "::text"
	return strings.Join(columns, ", ")
}
