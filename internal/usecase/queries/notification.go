package queries

import (
	"context"

	"sitehub/internal/domain/notification"
	"sitehub/internal/domain/user"
	"sitehub/internal/infra/repository"
)

type NotificationReadStore interface {
	FindByID(ctx context.Context, id string) (*notification.Notification, error)
	ListByUser(ctx context.Context, userID string, filter repository.ListFilter, page repository.Page) ([]*notification.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	WatchUser(ctx context.Context, userID string) (*repository.Watcher[notification.Notification], error)
}

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/queries/mock_notification.go -package=queriesmock

type NotificationQueries interface {
	GetByID(ctx context.Context, id, actorID string, actorRole user.Role) (*notification.Notification, error)
	ListByUser(ctx context.Context, userID string, filter repository.ListFilter, cursor *Cursor, limit int) ([]*notification.Notification, *Cursor, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Watch(ctx context.Context, userID string) (*repository.Watcher[notification.Notification], error)
}

type notificationQueriesImpl struct {
	repo NotificationReadStore
}

func NewNotificationQueries(repo NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{repo: repo}
}

func (q *notificationQueriesImpl) GetByID(ctx context.Context, id, actorID string, actorRole user.Role) (*notification.Notification, error) {
	n, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != actorID && !actorRole.CanActForOthers() {
		return nil, ErrNotificationAccess
	}
	return n, nil
}

// ListByUser fetches one extra row to decide whether a next cursor exists.
func (q *notificationQueriesImpl) ListByUser(ctx context.Context, userID string, filter repository.ListFilter, cursor *Cursor, limit int) ([]*notification.Notification, *Cursor, error) {
	limit = ValidateLimit(limit)
	page := repository.Page{Limit: limit + 1}
	if cursor != nil && cursor.After != "" {
		after, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		page.After = after
	}

	rows, err := q.repo.ListByUser(ctx, userID, filter, page)
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		next = &Cursor{After: EncodeAfterCursor(rows[limit-1].ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	return q.repo.UnreadCount(ctx, userID)
}

func (q *notificationQueriesImpl) Watch(ctx context.Context, userID string) (*repository.Watcher[notification.Notification], error) {
	return q.repo.WatchUser(ctx, userID)
}
