package team

import "sitehub/internal/pkg/errs"

var (
	ErrEmptyName       = errs.Validation("team name cannot be empty")
	ErrNameTooLong     = errs.Validation("team name exceeds maximum length")
	ErrMissingProject  = errs.Validation("project id is required")
	ErrMissingOwner    = errs.Validation("owner id is required")
	ErrInvalidRole     = errs.Validation("invalid member role")
	ErrInvalidStatus   = errs.Validation("invalid team status")
	ErrDuplicateMember = errs.Validation("user is already a member")
	ErrMemberNotFound  = errs.Validation("user is not a member")
	ErrOwnerNotRemoved = errs.Validation("owner cannot be removed from the team")
	ErrEmptyPatch      = errs.Validation("patch has no fields")
	ErrMissingMemberID = errs.Validation("member user id is required")
)

type Role string

const (
	RoleLead   Role = "lead"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleLead, RoleMember, RoleViewer:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
