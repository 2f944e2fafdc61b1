// File: internal/domain/models/role.go
package models

import "strings"

// Role is an internal role name as carried in the "auth" token claim and in
// the users.roles storage column.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Roles is a set of role names. The delimited wire/storage form exists only at
// the two boundaries (claim encoding, storage column); business logic always
// works with this type.
type Roles []Role

// ParseRoles decodes the comma-delimited form. Entries are trimmed and empty
// entries dropped.
func ParseRoles(s string) Roles {
	if strings.TrimSpace(s) == "" {
		return Roles{}
	}
	parts := strings.Split(s, ",")
	roles := make(Roles, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		roles = append(roles, Role(p))
	}
	return roles
}

// Join encodes the set back to its comma-delimited form.
func (r Roles) Join() string {
	parts := make([]string, 0, len(r))
	for _, role := range r {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ",")
}

// Contains reports whether the set holds the given role.
func (r Roles) Contains(role Role) bool {
	for _, existing := range r {
		if existing == role {
			return true
		}
	}
	return false
}

// Add returns the set with the role appended if it is not already present.
func (r Roles) Add(role Role) Roles {
	if r.Contains(role) {
		return r
	}
	return append(r, role)
}

// OrDefault guarantees the ROLE_USER floor: an empty set is replaced by the
// default role set.
func (r Roles) OrDefault() Roles {
	if len(r) == 0 {
		return Roles{RoleUser}
	}
	return r
}

// Strings returns the set as plain strings, for JSON responses.
func (r Roles) Strings() []string {
	out := make([]string, 0, len(r))
	for _, role := range r {
		out = append(out, string(role))
	}
	return out
}
