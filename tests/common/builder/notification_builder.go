//go:build unit || e2e

package builder

import (
	"time"

	"sitehub/internal/domain/notification"
	reqdto "sitehub/internal/handler/dto/request"
)

type NotificationBuilder struct {
	UserID    string
	ProjectID string
	Title     string
	Message   string
	Type      string
	Priority  string
	ActionURL string
	ExpiresAt *time.Time
	Read      bool
	Now       time.Time
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		UserID:    "u1",
		ProjectID: "p1",
		Title:     "Concrete pour scheduled",
		Message:   "Level 3 slab pour starts at 07:00.",
		Type:      string(notification.TypeTask),
		Priority:  string(notification.PriorityNormal),
		Now:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *NotificationBuilder) With(mutate func(*NotificationBuilder)) *NotificationBuilder {
	mutate(b)
	return b
}

func (b *NotificationBuilder) BuildParams() notification.NewParams {
	return notification.NewParams{
		UserID:    b.UserID,
		ProjectID: b.ProjectID,
		Title:     b.Title,
		Message:   b.Message,
		Type:      b.Type,
		Priority:  b.Priority,
		ActionURL: b.ActionURL,
		ExpiresAt: b.ExpiresAt,
	}
}

func (b *NotificationBuilder) BuildDomain() (*notification.Notification, error) {
	n, err := notification.New(b.BuildParams(), b.Now)
	if err != nil {
		return nil, err
	}
	n.Read = b.Read
	return n, nil
}

// MustBuildDomain panics on invalid builder state; for seeding fixtures.
func (b *NotificationBuilder) MustBuildDomain() *notification.Notification {
	n, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return n
}

func (b *NotificationBuilder) BuildCreateRequestDTO() reqdto.CreateNotificationRequest {
	return reqdto.CreateNotificationRequest{
		UserID:    b.UserID,
		ProjectID: b.ProjectID,
		Title:     b.Title,
		Message:   b.Message,
		Type:      b.Type,
		Priority:  b.Priority,
		ActionURL: b.ActionURL,
		ExpiresAt: b.ExpiresAt,
	}
}

// BuildStored returns the notification as the store would hand it back after create.
func (b *NotificationBuilder) BuildStored(id string) *notification.Notification {
	n := b.MustBuildDomain()
	n.ID = id
	n.CreatedAt = b.Now
	n.UpdatedAt = b.Now
	return n
}
