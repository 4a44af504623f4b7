package team

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxNameLength = 100

type Member struct {
	UserID   string
	Role     Role
	JoinedAt time.Time
}

type Team struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	OwnerID     string
	Members     []Member
	Status      Status

	StatusReason    string
	StatusChangedAt *time.Time
	ArchivedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds an active team whose owner is its first lead.
func New(projectID, name, description, ownerID string, now time.Time) (*Team, error) {
	t := &Team{
		ProjectID:   strings.TrimSpace(projectID),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		OwnerID:     strings.TrimSpace(ownerID),
		Status:      StatusActive,
	}
	if t.OwnerID != "" {
		t.Members = []Member{{UserID: t.OwnerID, Role: RoleLead, JoinedAt: now}}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Team) Validate() error {
	if t.ProjectID == "" {
		return ErrMissingProject
	}
	if t.OwnerID == "" {
		return ErrMissingOwner
	}
	if err := validateName(t.Name); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	seen := make(map[string]struct{}, len(t.Members))
	for _, m := range t.Members {
		if m.UserID == "" {
			return ErrMissingMemberID
		}
		if !m.Role.IsValid() {
			return ErrInvalidRole
		}
		if _, dup := seen[m.UserID]; dup {
			return ErrDuplicateMember
		}
		seen[m.UserID] = struct{}{}
	}
	return nil
}

// MemberIDs is denormalised into the document for array-contains queries.
func (t *Team) MemberIDs() []string {
	ids := make([]string, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.UserID
	}
	return ids
}

func (t *Team) HasMember(userID string) bool {
	return slices.ContainsFunc(t.Members, func(m Member) bool { return m.UserID == userID })
}

// WithMember returns the member list with userID appended.
func (t *Team) WithMember(userID string, role Role, now time.Time) ([]Member, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingMemberID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if t.HasMember(userID) {
		return nil, ErrDuplicateMember
	}
	members := slices.Clone(t.Members)
	return append(members, Member{UserID: userID, Role: role, JoinedAt: now}), nil
}

// WithoutMember returns the member list with userID removed.
func (t *Team) WithoutMember(userID string) ([]Member, error) {
	if userID == t.OwnerID {
		return nil, ErrOwnerNotRemoved
	}
	if !t.HasMember(userID) {
		return nil, ErrMemberNotFound
	}
	return slices.DeleteFunc(slices.Clone(t.Members), func(m Member) bool { return m.UserID == userID }), nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
