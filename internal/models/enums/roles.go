/*
Package enums - Seniority Engine Enumeration Types

==============================================================================
FILE: internal/models/enums/roles.go
==============================================================================

DESCRIPTION:
    Defines the UserRole type and constants for role-based access control.
    Roles determine what features and data each user can access.

USER PERSPECTIVE:
    - Roles are assigned when creating users
    - Each role has different permissions:
        * admin: Full system access, can manage users, carriers, and rosters
        * analyst: Can build rosters, configure scenarios, and run them
        * viewer: Read-only access to scenario results

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new roles (update IsValid() too)
    ⚠️  CAUTION: Changing existing role names (breaks database data)
    ❌  DO NOT modify: Remove existing roles without migration
    📝  Update middleware/auth.go when adding new roles

SYNTAX EXPLANATION:
    - type UserRole string: Type alias for type safety
    - IsValid(): Validates role value is one of the constants
    - MarshalText/UnmarshalText: JSON serialization support
    - strings.ToLower: Case-insensitive deserialization

AUTHORIZATION:
    - Roles are stored in JWT token claims
    - Middleware checks role for protected endpoints

ROLE HIERARCHY:
    admin > analyst > viewer

==============================================================================
*/
package enums

import "strings"

// UserRole represents the role of a user in the system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

// IsValid checks if the user role is valid.
func (ur UserRole) IsValid() bool {
	switch ur {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// String returns the string representation of the user role.
func (ur UserRole) String() string {
	return string(ur)
}

// MarshalText implements encoding.TextMarshaler for JSON serialization.
func (ur UserRole) MarshalText() ([]byte, error) {
	return []byte(ur.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON deserialization.
func (ur *UserRole) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	switch s {
	case "admin":
		*ur = RoleAdmin
	case "analyst":
		*ur = RoleAnalyst
	case "viewer":
		*ur = RoleViewer
	default:
		*ur = "" // Invalid role
	}
	return nil
}
