package repository

import (
	"context"
	"log/slog"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository/converter"
	"sitehub/internal/pkg/clock"
)

const (
	NotificationCollection = "notifications"
	DefaultNotificationTTL = 3 * time.Minute
)

type notificationCodec struct{}

func (notificationCodec) Collection() string { return NotificationCollection }

func (notificationCodec) Validate(n *notification.Notification) error { return n.Validate() }

func (notificationCodec) SetID(n *notification.Notification, id string) { n.ID = id }

func (notificationCodec) Encode(n *notification.Notification) docstore.Fields {
	return converter.NotificationToFields(n)
}

func (notificationCodec) Decode(doc docstore.Document) (*notification.Notification, error) {
	return converter.NotificationFromDocument(doc)
}

func (notificationCodec) EncodePatch(p notification.Patch) (docstore.Fields, error) {
	normalized, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	return converter.NotificationPatchToFields(normalized), nil
}

func (notificationCodec) EncodeStatus(status, reason string, now time.Time) (docstore.Fields, error) {
	s, err := notification.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return converter.NotificationStatusFields(s, reason, now), nil
}

// ListFilter narrows a user's notification list. Zero values mean no filter.
type ListFilter struct {
	UnreadOnly bool
	Type       notification.Type
	Priority   notification.Priority
	Status     notification.Status
}

type Page struct {
	Limit int
	After string
}

type NotificationRepository struct {
	*Cached[notification.Notification, notification.Patch]
}

func NewNotificationRepository(store docstore.Store, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *NotificationRepository {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationRepository{
		Cached: NewCached(store, notificationCodec{}, func(n *notification.Notification) string { return n.ID }, ttl, clk, logger),
	}
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, filter ListFilter, page Page) ([]*notification.Notification, error) {
	filters := []docstore.Filter{docstore.Where(converter.FieldUserID, docstore.OpEqual, userID)}
	if filter.UnreadOnly {
		filters = append(filters, docstore.Where(converter.FieldRead, docstore.OpEqual, false))
	}
	if filter.Type != "" {
		filters = append(filters, docstore.Where(converter.FieldType, docstore.OpEqual, string(filter.Type)))
	}
	if filter.Priority != "" {
		filters = append(filters, docstore.Where(converter.FieldPriority, docstore.OpEqual, string(filter.Priority)))
	}
	if filter.Status != "" {
		filters = append(filters, docstore.Where(converter.FieldStatus, docstore.OpEqual, string(filter.Status)))
	}
	return r.Find(ctx, docstore.Query{
		Filters:    filters,
		OrderBy:    &docstore.Order{Field: docstore.FieldCreateTime, Desc: true},
		Limit:      page.Limit,
		StartAfter: page.After,
	})
}

func (r *NotificationRepository) UpdateStatus(ctx context.Context, id string, status notification.Status, reason string) (*notification.Notification, error) {
	return r.Cached.UpdateStatus(ctx, id, string(status), reason)
}

// MarkAsRead is idempotent: an already read notification is returned unchanged.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) (*notification.Notification, error) {
	n, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	return r.UpdateStatus(ctx, id, notification.StatusRead, "")
}

// MarkAllAsRead flips every unread notification of the user in one batch and
// reports how many changed.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	unread, err := r.Find(ctx, docstore.Query{Filters: []docstore.Filter{
		docstore.Where(converter.FieldUserID, docstore.OpEqual, userID),
		docstore.Where(converter.FieldRead, docstore.OpEqual, false),
	}})
	if err != nil {
		return 0, err
	}
	fields := converter.NotificationStatusFields(notification.StatusRead, "", r.Now())
	writes := make([]docstore.Write, len(unread))
	for i, n := range unread {
		writes[i] = r.NewWrite(docstore.WriteUpdate, n.ID, fields)
	}
	if err := r.Commit(ctx, writes); err != nil {
		return 0, err
	}
	return len(writes), nil
}

func (r *NotificationRepository) Archive(ctx context.Context, id, reason string) (*notification.Notification, error) {
	return r.UpdateStatus(ctx, id, notification.StatusArchived, reason)
}

// DeleteExpired removes every notification whose expiry is at or before now, in one batch.
func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := r.Find(ctx, docstore.Query{Filters: []docstore.Filter{
		docstore.Where(converter.FieldExpiresAt, docstore.OpLessOrEqual, now.UTC()),
	}})
	if err != nil {
		return 0, err
	}
	writes := make([]docstore.Write, len(expired))
	for i, n := range expired {
		writes[i] = r.NewWrite(docstore.WriteDelete, n.ID, nil)
	}
	if err := r.Commit(ctx, writes); err != nil {
		return 0, err
	}
	return len(writes), nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	return r.Count(ctx,
		docstore.Where(converter.FieldUserID, docstore.OpEqual, userID),
		docstore.Where(converter.FieldRead, docstore.OpEqual, false),
	)
}

func (r *NotificationRepository) CountAll(ctx context.Context, userID string) (int, error) {
	return r.countBy(ctx, userID, "", nil)
}

func (r *NotificationRepository) CountByType(ctx context.Context, userID string, t notification.Type) (int, error) {
	return r.countBy(ctx, userID, converter.FieldType, string(t))
}

func (r *NotificationRepository) CountByPriority(ctx context.Context, userID string, p notification.Priority) (int, error) {
	return r.countBy(ctx, userID, converter.FieldPriority, string(p))
}

func (r *NotificationRepository) countBy(ctx context.Context, userID, field string, value any) (int, error) {
	filters := []docstore.Filter{docstore.Where(converter.FieldUserID, docstore.OpEqual, userID)}
	if field != "" {
		filters = append(filters, docstore.Where(field, docstore.OpEqual, value))
	}
	return r.Count(ctx, filters...)
}

func (r *NotificationRepository) WatchUser(ctx context.Context, userID string) (*Watcher[notification.Notification], error) {
	return r.Watch(ctx, docstore.Query{
		Filters: []docstore.Filter{docstore.Where(converter.FieldUserID, docstore.OpEqual, userID)},
		OrderBy: &docstore.Order{Field: docstore.FieldCreateTime, Desc: true},
	})
}
