//go:build unit

package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
	"sitehub/internal/pkg/ptr"
	"sitehub/tests/common/builder"
	docstoremock "sitehub/tests/mock/docstore"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type notificationFixture struct {
	store *docstore.Memory
	clock *clock.MockClock
	repo  *repository.NotificationRepository
}

func newNotificationFixture(opts ...docstore.MemoryOption) notificationFixture {
	c := clock.NewMockClock(testStart)
	store := docstore.NewMemory(append([]docstore.MemoryOption{docstore.WithClock(c)}, opts...)...)
	return notificationFixture{
		store: store,
		clock: c,
		repo:  repository.NewNotificationRepository(store, 3*time.Minute, c, discardLogger()),
	}
}

// =============================================================================
// Create / FindByID
// =============================================================================

func TestNotificationRepository_CreateThenFindServesFromCache(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	draft, err := builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
		b.Title = "T"
		b.UserID = "u1"
	}).BuildDomain()
	require.NoError(t, err)

	created, err := f.repo.Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, notification.StatusPending, created.Status)
	assert.False(t, created.Read)
	assert.Equal(t, testStart, created.CreatedAt)
	assert.Empty(t, draft.ID, "caller's draft must not be mutated")

	getsBefore := f.store.Stats().Gets
	found, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, getsBefore, f.store.Stats().Gets, "cached read must not hit the store")
	if diff := cmp.Diff(created, found); diff != "" {
		t.Errorf("found mismatch (-created +found):\n%s", diff)
	}
}

func TestNotificationRepository_TTLEviction(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		elapsed      time.Duration
		expectedGets int64
	}{
		{name: "within ttl is served from cache", elapsed: 3*time.Minute - time.Second, expectedGets: 0},
		{name: "at ttl goes back to the store", elapsed: 3 * time.Minute, expectedGets: 1},
		{name: "after ttl goes back to the store", elapsed: 10 * time.Minute, expectedGets: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newNotificationFixture()
			created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
			require.NoError(t, err)

			f.clock.Add(tc.elapsed)
			_, err = f.repo.FindByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedGets, f.store.Stats().Gets)
		})
	}
}

func TestNotificationRepository_SweepDropsStaleEntries(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	_, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)
	f.clock.Add(time.Minute)
	_, err = f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	f.clock.Add(2 * time.Minute)
	assert.Equal(t, 1, f.repo.Sweep())
}

func TestNotificationRepository_FindByIDErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		setupMock  func(*docstoremock.MockStore)
		expectKind infra.RepositoryErrorKind
		sentinel   error
	}{
		{
			name: "error: absent document is not found",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Get(ctx, repository.NotificationCollection, "n1").Return(docstore.Document{}, errs.Wrap(docstore.ErrNotFound, "n1"))
			},
			expectKind: infra.KindNotFound,
			sentinel:   errs.ErrNotFound,
		},
		{
			name: "error: transient store failure is persistence",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Get(ctx, repository.NotificationCollection, "n1").Return(docstore.Document{}, errors.New("connection reset"))
			},
			expectKind: infra.KindPersistence,
			sentinel:   errs.ErrPersistence,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := docstoremock.NewMockStore(ctrl)
			tc.setupMock(mockStore)
			repo := repository.NewNotificationRepository(mockStore, time.Minute, clock.NewMockClock(testStart), discardLogger())

			n, err := repo.FindByID(ctx, "n1")
			require.Error(t, err)
			assert.Nil(t, n)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			assert.True(t, errors.Is(err, tc.sentinel))
		})
	}
}

func TestNotificationRepository_CreateFailures(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		mutate     func(*notification.Notification)
		setupMock  func(*docstoremock.MockStore)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "error: validation fails before any store call",
			mutate:     func(n *notification.Notification) { n.Title = "" },
			setupMock:  func(*docstoremock.MockStore) {},
			expectKind: infra.KindValidation,
		},
		{
			name:   "error: store write failure leaves cache untouched",
			mutate: func(*notification.Notification) {},
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().NewID(repository.NotificationCollection).Return("n1")
				m.EXPECT().Set(ctx, repository.NotificationCollection, "n1", gomock.Any()).Return(docstore.Document{}, errors.New("quota exceeded"))
				m.EXPECT().Get(ctx, repository.NotificationCollection, "n1").Return(docstore.Document{}, docstore.ErrNotFound)
			},
			expectKind: infra.KindPersistence,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := docstoremock.NewMockStore(ctrl)
			tc.setupMock(mockStore)
			repo := repository.NewNotificationRepository(mockStore, time.Minute, clock.NewMockClock(testStart), discardLogger())

			n := builder.NewNotificationBuilder().MustBuildDomain()
			tc.mutate(n)

			_, err := repo.Create(ctx, n)
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)

			if tc.expectKind == infra.KindPersistence {
				_, err = repo.FindByID(ctx, "n1")
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
			}
		})
	}
}

func TestNotificationRepository_IdempotentRead(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	first, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reads differ (-first +second):\n%s", diff)
	}
}

func TestNotificationRepository_ReturnedEntitiesAreCopies(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
		b.ExpiresAt = ptr.To(testStart.Add(time.Hour))
	}).MustBuildDomain())
	require.NoError(t, err)

	created.Title = "mutated"
	*created.ExpiresAt = testStart.Add(100 * time.Hour)

	found, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Concrete pour scheduled", found.Title)
	assert.Equal(t, testStart.Add(time.Hour), *found.ExpiresAt)
}

// =============================================================================
// Update / UpdateStatus / Delete
// =============================================================================

func TestNotificationRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		patch      notification.Patch
		missing    bool
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:  "success: title and priority change",
			patch: notification.Patch{Title: ptr.To("  Pour moved  "), Priority: ptr.To("high")},
		},
		{
			name:       "error: empty patch",
			patch:      notification.Patch{},
			expectKind: infra.KindValidation,
		},
		{
			name:       "error: invalid type",
			patch:      notification.Patch{Type: ptr.To("gossip")},
			expectKind: infra.KindValidation,
		},
		{
			name:       "error: unknown id",
			patch:      notification.Patch{Title: ptr.To("x")},
			missing:    true,
			expectKind: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newNotificationFixture()
			created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
			require.NoError(t, err)

			id := created.ID
			if tc.missing {
				id = "missing"
			}
			f.clock.Add(time.Minute)

			updated, err := f.repo.Update(ctx, id, tc.patch)
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Pour moved", updated.Title)
			assert.Equal(t, notification.PriorityHigh, updated.Priority)
			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

			getsBefore := f.store.Stats().Gets
			found, err := f.repo.FindByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, getsBefore, f.store.Stats().Gets)
			if diff := cmp.Diff(updated, found); diff != "" {
				t.Errorf("stale read after update (-updated +found):\n%s", diff)
			}
		})
	}
}

func TestNotificationRepository_UpdateStatusRecordsMilestones(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	f.clock.Add(time.Minute)
	delivered, err := f.repo.UpdateStatus(ctx, created.ID, notification.StatusPartiallyDelivered, "email: smtp down")
	require.NoError(t, err)
	assert.Equal(t, notification.StatusPartiallyDelivered, delivered.Status)
	assert.Equal(t, "email: smtp down", delivered.StatusReason)
	require.NotNil(t, delivered.StatusChangedAt)
	assert.Equal(t, testStart.Add(time.Minute), *delivered.StatusChangedAt)
	require.NotNil(t, delivered.DeliveredAt)

	_, err = f.repo.UpdateStatus(ctx, created.ID, notification.Status("bogus"), "")
	assert.True(t, infra.IsKind(err, infra.KindValidation))
}

func TestNotificationRepository_DeleteEvictsUnconditionally(t *testing.T) {
	ctx := context.Background()

	t.Run("after a real delete", func(t *testing.T) {
		f := newNotificationFixture()
		created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
		require.NoError(t, err)

		require.NoError(t, f.repo.Delete(ctx, created.ID))
		_, err = f.repo.FindByID(ctx, created.ID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("when the store already lost the document", func(t *testing.T) {
		f := newNotificationFixture()
		created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
		require.NoError(t, err)

		// removed behind the repository's back; the cache still holds it
		require.NoError(t, f.store.Delete(ctx, repository.NotificationCollection, created.ID))
		require.NoError(t, f.repo.Delete(ctx, created.ID))

		_, err = f.repo.FindByID(ctx, created.ID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("even when the store delete fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := docstoremock.NewMockStore(ctrl)
		repo := repository.NewNotificationRepository(mockStore, time.Minute, clock.NewMockClock(testStart), discardLogger())

		mockStore.EXPECT().NewID(gomock.Any()).Return("n1")
		mockStore.EXPECT().Set(ctx, repository.NotificationCollection, "n1", gomock.Any()).DoAndReturn(
			func(_ context.Context, coll, id string, data docstore.Fields) (docstore.Document, error) {
				return docstore.Document{Collection: coll, ID: id, Data: data, CreateTime: testStart, UpdateTime: testStart}, nil
			})
		mockStore.EXPECT().Delete(ctx, repository.NotificationCollection, "n1").Return(errors.New("unavailable"))
		mockStore.EXPECT().Get(ctx, repository.NotificationCollection, "n1").Return(docstore.Document{}, errors.New("unavailable"))

		_, err := repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
		require.NoError(t, err)

		err = repo.Delete(ctx, "n1")
		assert.True(t, infra.IsKind(err, infra.KindPersistence))

		_, err = repo.FindByID(ctx, "n1")
		assert.True(t, infra.IsKind(err, infra.KindPersistence), "must go to the store, not the cache")
	})
}

// =============================================================================
// Batch operations
// =============================================================================

func TestNotificationRepository_BatchCreate(t *testing.T) {
	ctx := context.Background()

	rejectTitle := func(title string) docstore.Rule {
		return func(w docstore.Write) error {
			if w.Data.String("title") == title {
				return errs.New("rule: title not allowed")
			}
			return nil
		}
	}

	testCases := []struct {
		name       string
		rules      []docstore.Rule
		expectKind infra.RepositoryErrorKind
		expectN    int
	}{
		{name: "success: all three land", expectN: 3},
		{name: "error: store rejects b so nothing lands", rules: []docstore.Rule{rejectTitle("b")}, expectKind: infra.KindPersistence},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newNotificationFixture(docstore.WithRules(tc.rules...))

			var batch []*notification.Notification
			for _, title := range []string{"a", "b", "c"} {
				batch = append(batch, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.Title = title }).MustBuildDomain())
			}

			created, err := f.repo.BatchCreate(ctx, batch)
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			} else {
				require.NoError(t, err)
				require.Len(t, created, 3)
				getsBefore := f.store.Stats().Gets
				for _, n := range created {
					_, err := f.repo.FindByID(ctx, n.ID)
					require.NoError(t, err)
				}
				assert.Equal(t, getsBefore, f.store.Stats().Gets, "batch results must be cached")
			}

			n, err := f.repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expectN, n)
		})
	}
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	f.clock.Add(time.Minute)
	first, err := f.repo.MarkAsRead(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.Read)
	assert.Equal(t, notification.StatusRead, first.Status)
	require.NotNil(t, first.ReadAt)

	writes := f.store.Stats().Writes
	f.clock.Add(time.Minute)
	second, err := f.repo.MarkAsRead(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, writes, f.store.Stats().Writes, "already read must not write")
	assert.Equal(t, *first.ReadAt, *second.ReadAt)
}

func TestNotificationRepository_MarkAllAsReadAndUnreadCount(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	for i := range 4 {
		_, err := f.repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
			if i == 3 {
				b.UserID = "u2"
			}
		}).MustBuildDomain())
		require.NoError(t, err)
	}

	unread, err := f.repo.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	changed, err := f.repo.MarkAllAsRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	unread, err = f.repo.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	other, err := f.repo.UnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, other)

	list, err := f.repo.ListByUser(ctx, "u1", repository.ListFilter{}, repository.Page{})
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}

func TestNotificationRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	soon, err := f.repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
		b.ExpiresAt = ptr.To(testStart.Add(time.Hour))
	}).MustBuildDomain())
	require.NoError(t, err)
	later, err := f.repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
		b.ExpiresAt = ptr.To(testStart.Add(48 * time.Hour))
	}).MustBuildDomain())
	require.NoError(t, err)
	_, err = f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	removed, err := f.repo.DeleteExpired(ctx, testStart.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = f.repo.FindByID(ctx, soon.ID)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	_, err = f.repo.FindByID(ctx, later.ID)
	assert.NoError(t, err)
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()

	var ids []string
	for i := range 5 {
		n, err := f.repo.Create(ctx, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
			if i%2 == 0 {
				b.Type = string(notification.TypeSafety)
			}
		}).MustBuildDomain())
		require.NoError(t, err)
		ids = append(ids, n.ID)
		f.clock.Add(time.Second)
	}

	page1, err := f.repo.ListByUser(ctx, "u1", repository.ListFilter{}, repository.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, ids[4], page1[0].ID, "newest first")
	assert.Equal(t, ids[3], page1[1].ID)

	page2, err := f.repo.ListByUser(ctx, "u1", repository.ListFilter{}, repository.Page{Limit: 2, After: page1[1].ID})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[2], page2[0].ID)

	safety, err := f.repo.ListByUser(ctx, "u1", repository.ListFilter{Type: notification.TypeSafety}, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, safety, 3)

	_, err = f.repo.ListByUser(ctx, "u1", repository.ListFilter{}, repository.Page{After: "nope"})
	assert.True(t, infra.IsKind(err, infra.KindValidation))
}

// =============================================================================
// Watch
// =============================================================================

func TestNotificationRepository_Watch(t *testing.T) {
	ctx := context.Background()
	f := newNotificationFixture()
	defer f.store.Close()

	w, err := f.repo.WatchUser(ctx, "u1")
	require.NoError(t, err)

	first := nextSnapshot(t, w)
	require.NoError(t, first.Err)
	assert.Empty(t, first.Items)

	created, err := f.repo.Create(ctx, builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	var latest repository.Snapshot[notification.Notification]
	require.Eventually(t, func() bool {
		select {
		case s := <-w.Snapshots():
			latest = s
		default:
		}
		return len(latest.Items) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, created.ID, latest.Items[0].ID)

	w.Stop()
	w.Stop()
	for range w.Snapshots() {
		// drain whatever was coalesced before Stop
	}
}

func TestNotificationRepository_WatchStopsWithContext(t *testing.T) {
	f := newNotificationFixture()
	defer f.store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	w, err := f.repo.WatchUser(ctx, "u1")
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool {
		for {
			select {
			case _, open := <-w.Snapshots():
				if !open {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func nextSnapshot(t *testing.T, w *repository.Watcher[notification.Notification]) repository.Snapshot[notification.Notification] {
	t.Helper()
	select {
	case s := <-w.Snapshots():
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return repository.Snapshot[notification.Notification]{}
	}
}
