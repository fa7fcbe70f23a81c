// Package auth defines the authenticated identity value object handlers and
// services share. Role checks are explicit capability functions instead of
// attribute lookups on an opaque user map.
package auth

import "strings"

// Role names carried in the host-issued token.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleStaff      = "staff"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	AnonymousID string
	Role        string
	IsStaff     bool
	FullName    string
}

// NormalizeRole lowercases and trims a role claim value.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// HasRole reports whether the identity carries the required role. Staff
// satisfy every role requirement.
func HasRole(identity Identity, required string) bool {
	if identity.IsStaff {
		return true
	}
	return NormalizeRole(identity.Role) == NormalizeRole(required)
}

// IsCourseTeam reports whether the identity may grade and edit blocks.
func (i Identity) IsCourseTeam() bool {
	return i.IsStaff || NormalizeRole(i.Role) == RoleInstructor || NormalizeRole(i.Role) == RoleStaff
}

// IsStudent reports whether the identity is a learner.
func (i Identity) IsStudent() bool {
	return NormalizeRole(i.Role) == RoleStudent
}
