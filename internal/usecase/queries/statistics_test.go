//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/usecase/queries"
	"sitehub/tests/common/builder"
	queriesmock "sitehub/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newRepo() (*repository.NotificationRepository, *clock.MockClock) {
	clk := clock.NewMockClock(testStart)
	store := docstore.NewMemory(docstore.WithClock(clk))
	return repository.NewNotificationRepository(store, time.Minute, clk, slog.New(slog.NewTextHandler(io.Discard, nil))), clk
}

func TestStatistics_SeededUser(t *testing.T) {
	ctx := context.Background()
	repo, clk := newRepo()

	// 10 for u1: 6 unread / 4 read, 7 task / 3 safety; plus noise for u2
	for i := range 10 {
		_, err := repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
			b.Read = i >= 6
			if i >= 7 {
				b.Type = string(notification.TypeSafety)
				b.Priority = string(notification.PriorityUrgent)
			}
		}).MustBuildDomain())
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.UserID = "u2" }).MustBuildDomain())
	require.NoError(t, err)

	clk.Add(time.Minute)
	stats, err := queries.NewStatisticsQueries(repo, clk).Statistics(ctx, "u1")
	require.NoError(t, err)

	expected := &queries.NotificationStatistics{
		OwnerID:    "u1",
		Total:      10,
		Unread:     6,
		ByType:     map[notification.Type]int{notification.TypeTask: 7, notification.TypeSafety: 3},
		ByPriority: map[notification.Priority]int{notification.PriorityNormal: 7, notification.PriorityUrgent: 3},
		ComputedAt: testStart.Add(time.Minute),
	}
	if diff := cmp.Diff(expected, stats); diff != "" {
		t.Errorf("statistics mismatch (-want +got):\n%s", diff)
	}
}

func TestStatistics_EmptyUserHasNoBuckets(t *testing.T) {
	repo, clk := newRepo()

	stats, err := queries.NewStatisticsQueries(repo, clk).Statistics(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByType)
	assert.Empty(t, stats.ByPriority)
}

func TestStatistics_AnyFailureFailsTheWholeCall(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	counter := queriesmock.NewMockNotificationCounter(ctrl)

	storeDown := errors.New("store unavailable")
	counter.EXPECT().CountAll(gomock.Any(), "u1").Return(10, nil).AnyTimes()
	counter.EXPECT().UnreadCount(gomock.Any(), "u1").Return(6, nil).AnyTimes()
	counter.EXPECT().CountByPriority(gomock.Any(), "u1", gomock.Any()).Return(1, nil).AnyTimes()
	counter.EXPECT().CountByType(gomock.Any(), "u1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, typ notification.Type) (int, error) {
			if typ == notification.TypeApproval {
				return 0, storeDown
			}
			return 1, nil
		}).AnyTimes()

	stats, err := queries.NewStatisticsQueries(counter, clock.NewMockClock(testStart)).Statistics(ctx, "u1")
	assert.ErrorIs(t, err, storeDown)
	assert.Nil(t, stats)
}
