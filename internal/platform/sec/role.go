// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access, including destructive catalog operations.
	RoleAdmin UserRole = "admin"

	// Approves or rejects reviews and publishes content.
	RoleReviewer UserRole = "reviewer"

	// Creates structure and versions, submits versions for review.
	RoleEditor UserRole = "editor"

	// Authenticated reader; may comment on reviews.
	RoleReader UserRole = "reader"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleReviewer:
		return 30
	case RoleEditor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
