package commands

import (
	"context"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/domain/team"
)

// Write-side ports. The cached repositories in internal/infra/repository satisfy them.

type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error)
	BatchCreate(ctx context.Context, ns []*notification.Notification) ([]*notification.Notification, error)
	FindByID(ctx context.Context, id string) (*notification.Notification, error)
	Update(ctx context.Context, id string, patch notification.Patch) (*notification.Notification, error)
	UpdateStatus(ctx context.Context, id string, status notification.Status, reason string) (*notification.Notification, error)
	MarkAsRead(ctx context.Context, id string) (*notification.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
	Archive(ctx context.Context, id, reason string) (*notification.Notification, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type TeamRepository interface {
	Create(ctx context.Context, t *team.Team) (*team.Team, error)
	FindByID(ctx context.Context, id string) (*team.Team, error)
	Update(ctx context.Context, id string, patch team.Patch) (*team.Team, error)
	AddMember(ctx context.Context, teamID, userID string, role team.Role) (*team.Team, error)
	RemoveMember(ctx context.Context, teamID, userID string) (*team.Team, error)
	Archive(ctx context.Context, id, reason string) (*team.Team, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/mock_ports.go -package=commandsmock

// ChannelSender delivers one notification over one medium and returns the
// medium's message id.
type ChannelSender interface {
	Send(ctx context.Context, n *notification.Notification, ch notification.ChannelDescriptor) (string, error)
}

// SenderLookup resolves the sender for a channel kind; ok is false when the
// kind is unknown or its sender is not configured.
type SenderLookup interface {
	Lookup(kind notification.ChannelKind) (ChannelSender, bool)
}
