package queries

import (
	"context"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/clock"

	"golang.org/x/sync/errgroup"
)

type NotificationCounter interface {
	CountAll(ctx context.Context, userID string) (int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	CountByType(ctx context.Context, userID string, t notification.Type) (int, error)
	CountByPriority(ctx context.Context, userID string, p notification.Priority) (int, error)
}

//go:generate mockgen -source=statistics.go -destination=../../../tests/mock/queries/mock_statistics.go -package=queriesmock

type StatisticsQueries interface {
	Statistics(ctx context.Context, ownerID string) (*NotificationStatistics, error)
}

type statisticsQueriesImpl struct {
	counter NotificationCounter
	clock   clock.Clock
}

func NewStatisticsQueries(counter NotificationCounter, clk clock.Clock) StatisticsQueries {
	return &statisticsQueriesImpl{counter: counter, clock: clk}
}

// Statistics runs every count concurrently. The first failure cancels the
// rest and fails the whole call; partial statistics are never returned.
func (q *statisticsQueriesImpl) Statistics(ctx context.Context, ownerID string) (*NotificationStatistics, error) {
	var total, unread int
	byType := make([]int, len(notification.AllTypes))
	byPriority := make([]int, len(notification.AllPriorities))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = q.counter.CountAll(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		unread, err = q.counter.UnreadCount(gctx, ownerID)
		return err
	})
	for i, t := range notification.AllTypes {
		g.Go(func() (err error) {
			byType[i], err = q.counter.CountByType(gctx, ownerID, t)
			return err
		})
	}
	for i, p := range notification.AllPriorities {
		g.Go(func() (err error) {
			byPriority[i], err = q.counter.CountByPriority(gctx, ownerID, p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &NotificationStatistics{
		OwnerID:    ownerID,
		Total:      total,
		Unread:     unread,
		ByType:     make(map[notification.Type]int),
		ByPriority: make(map[notification.Priority]int),
		ComputedAt: q.clock.Now(),
	}
	for i, n := range byType {
		if n > 0 {
			stats.ByType[notification.AllTypes[i]] = n
		}
	}
	for i, n := range byPriority {
		if n > 0 {
			stats.ByPriority[notification.AllPriorities[i]] = n
		}
	}
	return stats, nil
}
