package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is carried in the identity provider's token. Users themselves live there too.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanActForOthers reports whether the role may read other users' notifications.
func (r Role) CanActForOthers() bool {
	return r == RoleAdmin || r == RoleOperator
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
