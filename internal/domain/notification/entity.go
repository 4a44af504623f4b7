package notification

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength   = 200
	MaxMessageLength = 2000
)

// Notification is the persisted notification document.
// Fields are exported so the cache can hand out deep copies.
type Notification struct {
	ID        string
	UserID    string
	ProjectID string
	Title     string
	Message   string
	Type      Type
	Priority  Priority
	Status    Status
	Read      bool
	ActionURL string
	ExpiresAt *time.Time

	StatusReason    string
	StatusChangedAt *time.Time
	DeliveredAt     *time.Time
	ReadAt          *time.Time
	ArchivedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewParams struct {
	UserID    string
	ProjectID string
	Title     string
	Message   string
	Type      string
	Priority  string
	ActionURL string
	ExpiresAt *time.Time
}

// New validates the params and returns a pending, unread notification without an id;
// the id and timestamps are assigned by the store on create.
func New(p NewParams, now time.Time) (*Notification, error) {
	typ, err := ParseType(p.Type)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(p.Priority)
	if err != nil {
		return nil, err
	}

	n := &Notification{
		UserID:    strings.TrimSpace(p.UserID),
		ProjectID: strings.TrimSpace(p.ProjectID),
		Title:     strings.TrimSpace(p.Title),
		Message:   strings.TrimSpace(p.Message),
		Type:      typ,
		Priority:  priority,
		Status:    StatusPending,
		ActionURL: strings.TrimSpace(p.ActionURL),
		ExpiresAt: p.ExpiresAt,
	}
	if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
		return nil, ErrExpiryInThePast
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks the invariants every stored notification must hold.
func (n *Notification) Validate() error {
	if n.UserID == "" {
		return ErrMissingUser
	}
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	if utf8.RuneCountInString(n.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if !n.Type.IsValid() {
		return ErrInvalidType
	}
	if !n.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !n.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && !n.ExpiresAt.After(now)
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
