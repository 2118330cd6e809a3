package domain

import dErrors "partnerdesk/pkg/domain-errors"

// Role determines which parts of the system an account can see. Admins get
// the full moderation surface and the status filter; department accounts see
// their own department's records; viewers get the public read-only view.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDepartment Role = "department"
	RoleViewer     Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleDepartment: true,
	RoleViewer:     true,
}

// ParseRole constructs a Role from external input.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid role")
	}
	return r, nil
}

func (r Role) IsValid() bool { return validRoles[r] }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) String() string { return string(r) }
