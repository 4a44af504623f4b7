package team

import "strings"

// Patch covers the editable team fields; membership changes go through
// WithMember/WithoutMember so the member index stays consistent.
type Patch struct {
	Name        *string
	Description *string
	Members     []Member
}

func (p Patch) Normalize() (Patch, error) {
	if p.Name == nil && p.Description == nil && p.Members == nil {
		return Patch{}, ErrEmptyPatch
	}
	out := p
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if err := validateName(n); err != nil {
			return Patch{}, err
		}
		out.Name = &n
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		out.Description = &d
	}
	for _, m := range p.Members {
		if m.UserID == "" {
			return Patch{}, ErrMissingMemberID
		}
		if !m.Role.IsValid() {
			return Patch{}, ErrInvalidRole
		}
	}
	return out, nil
}
