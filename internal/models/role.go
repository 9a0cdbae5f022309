package models

import (
	"bytes"
	"encoding/json"
)

// Canonical role names used for authorization decisions. Comparison is
// case-sensitive against this vocabulary.
const (
	RoleAdmin   = "Admin"
	RoleStudent = "Student"
)

// Role is the canonical role name. The backend is inconsistent about its
// shape: some payloads carry a bare string, others a nested object with a
// display name. Both decode into the same canonical value here so nothing
// past the API boundary sees the raw representation.
type Role struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts `"Admin"` as well as `{"id":1,"name":"Admin"}`.
func (r *Role) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Role{}
		return nil
	}

	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*r = Role{Name: name}
		return nil
	}

	type roleObject Role
	var obj roleObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	*r = Role(obj)
	return nil
}

// IsAdmin reports whether the role grants full CRUD access.
func (r Role) IsAdmin() bool { return r.Name == RoleAdmin }

// IsStudent reports whether the role is the restricted student role.
func (r Role) IsStudent() bool { return r.Name == RoleStudent }

// Known reports whether the role belongs to the fixed vocabulary.
func Known(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// HomePath returns the canonical landing route for a role. Unknown roles get
// the login screen.
func HomePath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/users"
	case RoleStudent:
		return "/student/services"
	default:
		return "/login"
	}
}
