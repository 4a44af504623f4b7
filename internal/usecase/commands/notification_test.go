//go:build unit

package commands_test

import (
	"context"
	"testing"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
	"sitehub/internal/pkg/ptr"
	"sitehub/internal/usecase/commands"
	"sitehub/tests/common/builder"
	commandsmock "sitehub/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func storedNotification(id, owner string) *notification.Notification {
	n := builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.UserID = owner }).MustBuildDomain()
	n.ID = id
	return n
}

func TestNotificationCommands_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		params        notification.NewParams
		setupMock     func(*commandsmock.MockNotificationRepository)
		expectedError error
	}{
		{
			name:   "success: persists a pending notification",
			params: builder.NewNotificationBuilder().BuildParams(),
			setupMock: func(m *commandsmock.MockNotificationRepository) {
				m.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, n *notification.Notification) (*notification.Notification, error) {
					assert.Equal(t, notification.StatusPending, n.Status)
					out := *n
					out.ID = "n1"
					return &out, nil
				})
			},
		},
		{
			name:          "error: invalid params never reach the repository",
			params:        builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.Type = "gossip" }).BuildParams(),
			setupMock:     func(*commandsmock.MockNotificationRepository) {},
			expectedError: notification.ErrInvalidType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := commandsmock.NewMockNotificationRepository(ctrl)
			tc.setupMock(repo)

			uc := commands.NewNotificationUseCase(repo, clock.NewMockClock(testStart))
			n, err := uc.Create(ctx, tc.params)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "n1", n.ID)
		})
	}
}

func TestNotificationCommands_BatchCreateValidatesEveryItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := commandsmock.NewMockNotificationRepository(ctrl)
	uc := commands.NewNotificationUseCase(repo, clock.NewMockClock(testStart))

	good := builder.NewNotificationBuilder().BuildParams()
	bad := builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.Title = "" }).BuildParams()

	_, err := uc.BatchCreate(context.Background(), []notification.NewParams{good, bad})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrValidation))
	assert.Contains(t, err.Error(), "item 1")
}

func TestNotificationCommands_Ownership(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		actorID       string
		run           func(uc commands.NotificationCommands, actorID string) error
		setupMock     func(*commandsmock.MockNotificationRepository)
		expectedError error
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name:    "success: owner marks as read",
			actorID: "u1",
			run: func(uc commands.NotificationCommands, actorID string) error {
				_, err := uc.MarkAsRead(ctx, "n1", actorID)
				return err
			},
			setupMock: func(m *commandsmock.MockNotificationRepository) {
				m.EXPECT().FindByID(ctx, "n1").Return(storedNotification("n1", "u1"), nil)
				m.EXPECT().MarkAsRead(ctx, "n1").Return(storedNotification("n1", "u1"), nil)
			},
		},
		{
			name:    "error: other user cannot update",
			actorID: "u2",
			run: func(uc commands.NotificationCommands, actorID string) error {
				_, err := uc.Update(ctx, "n1", notification.Patch{Title: ptr.To("x")}, actorID)
				return err
			},
			setupMock: func(m *commandsmock.MockNotificationRepository) {
				m.EXPECT().FindByID(ctx, "n1").Return(storedNotification("n1", "u1"), nil)
			},
			expectedError: commands.ErrNotificationNotOwned,
		},
		{
			name:    "error: other user cannot delete",
			actorID: "u2",
			run: func(uc commands.NotificationCommands, actorID string) error {
				return uc.Delete(ctx, "n1", actorID)
			},
			setupMock: func(m *commandsmock.MockNotificationRepository) {
				m.EXPECT().FindByID(ctx, "n1").Return(storedNotification("n1", "u1"), nil)
			},
			expectedError: commands.ErrNotificationNotOwned,
		},
		{
			name:    "error: bad status is rejected before loading",
			actorID: "u1",
			run: func(uc commands.NotificationCommands, actorID string) error {
				_, err := uc.UpdateStatus(ctx, "n1", "shipped", "", actorID)
				return err
			},
			setupMock:     func(*commandsmock.MockNotificationRepository) {},
			expectedError: notification.ErrInvalidStatus,
		},
		{
			name:    "error: not found propagates",
			actorID: "u1",
			run: func(uc commands.NotificationCommands, actorID string) error {
				_, err := uc.Archive(ctx, "n1", "", actorID)
				return err
			},
			setupMock: func(m *commandsmock.MockNotificationRepository) {
				m.EXPECT().FindByID(ctx, "n1").Return(nil, infra.WrapRepoErr(discardLogger(), infra.KindNotFound, "missing", errs.ErrNotFound))
			},
			expectKind: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := commandsmock.NewMockNotificationRepository(ctrl)
			tc.setupMock(repo)

			err := tc.run(commands.NewNotificationUseCase(repo, clock.NewMockClock(testStart)), tc.actorID)
			switch {
			case tc.expectedError != nil:
				assert.ErrorIs(t, err, tc.expectedError)
			case tc.expectKind != "":
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotificationCommands_DeleteExpiredUsesClock(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := commandsmock.NewMockNotificationRepository(ctrl)
	repo.EXPECT().DeleteExpired(ctx, testStart).Return(2, nil)

	n, err := commands.NewNotificationUseCase(repo, clock.NewMockClock(testStart)).DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
