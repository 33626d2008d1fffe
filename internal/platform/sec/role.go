// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including deletes of whole registrations.
	RoleAdmin UserRole = "admin"

	// Volunteers who transcribe and correct registrations and link them to the tree.
	RoleEditor UserRole = "editor"

	// Signed-in researchers who may browse but not change transcriptions.
	RoleVisitor UserRole = "visitor"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleVisitor:
		return 10
	default:
		return 0
	}
}
