package commands

import (
	"context"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
)

var ErrNotificationNotOwned = errs.New("notification not owned by user")

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/commands/mock_notification.go -package=commandsmock

type NotificationCommands interface {
	Create(ctx context.Context, params notification.NewParams) (*notification.Notification, error)
	BatchCreate(ctx context.Context, params []notification.NewParams) ([]*notification.Notification, error)
	Update(ctx context.Context, id string, patch notification.Patch, actorID string) (*notification.Notification, error)
	UpdateStatus(ctx context.Context, id, status, reason, actorID string) (*notification.Notification, error)
	MarkAsRead(ctx context.Context, id, actorID string) (*notification.Notification, error)
	MarkAllAsRead(ctx context.Context, actorID string) (int, error)
	Archive(ctx context.Context, id, reason, actorID string) (*notification.Notification, error)
	Delete(ctx context.Context, id, actorID string) error
	DeleteExpired(ctx context.Context) (int, error)
}

type notificationUseCaseImpl struct {
	repo  NotificationRepository
	clock clock.Clock
}

func NewNotificationUseCase(repo NotificationRepository, clk clock.Clock) NotificationCommands {
	return &notificationUseCaseImpl{repo: repo, clock: clk}
}

// Create addresses a notification to params.UserID; any authenticated caller may notify any user.
func (uc *notificationUseCaseImpl) Create(ctx context.Context, params notification.NewParams) (*notification.Notification, error) {
	n, err := notification.New(params, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, n)
}

func (uc *notificationUseCaseImpl) BatchCreate(ctx context.Context, params []notification.NewParams) ([]*notification.Notification, error) {
	now := uc.clock.Now()
	drafts := make([]*notification.Notification, len(params))
	for i, p := range params {
		n, err := notification.New(p, now)
		if err != nil {
			return nil, errs.Wrapf(err, "item %d", i)
		}
		drafts[i] = n
	}
	return uc.repo.BatchCreate(ctx, drafts)
}

func (uc *notificationUseCaseImpl) Update(ctx context.Context, id string, patch notification.Patch, actorID string) (*notification.Notification, error) {
	if err := uc.authorize(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, patch)
}

func (uc *notificationUseCaseImpl) UpdateStatus(ctx context.Context, id, status, reason, actorID string) (*notification.Notification, error) {
	st, err := notification.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.UpdateStatus(ctx, id, st, reason)
}

func (uc *notificationUseCaseImpl) MarkAsRead(ctx context.Context, id, actorID string) (*notification.Notification, error) {
	if err := uc.authorize(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.MarkAsRead(ctx, id)
}

func (uc *notificationUseCaseImpl) MarkAllAsRead(ctx context.Context, actorID string) (int, error) {
	return uc.repo.MarkAllAsRead(ctx, actorID)
}

func (uc *notificationUseCaseImpl) Archive(ctx context.Context, id, reason, actorID string) (*notification.Notification, error) {
	if err := uc.authorize(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.Archive(ctx, id, reason)
}

func (uc *notificationUseCaseImpl) Delete(ctx context.Context, id, actorID string) error {
	if err := uc.authorize(ctx, id, actorID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *notificationUseCaseImpl) DeleteExpired(ctx context.Context) (int, error) {
	return uc.repo.DeleteExpired(ctx, uc.clock.Now())
}

func (uc *notificationUseCaseImpl) authorize(ctx context.Context, id, actorID string) error {
	n, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actorID {
		return ErrNotificationNotOwned
	}
	return nil
}
