//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra"
	"sitehub/internal/infra/channel"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
	"sitehub/internal/usecase/commands"
	"sitehub/tests/common/builder"
	commandsmock "sitehub/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	inApp = notification.ChannelDescriptor{Kind: notification.ChannelInApp}
	email = notification.ChannelDescriptor{Kind: notification.ChannelEmail, Address: "foreman@example.com"}
	push  = notification.ChannelDescriptor{Kind: notification.ChannelPush, Address: "device-1"}
	sms   = notification.ChannelDescriptor{Kind: notification.ChannelSMS, Address: "+819012345678"}
)

type dispatchFixture struct {
	store    *docstore.Memory
	repo     *repository.NotificationRepository
	registry *channel.Registry
	senders  map[notification.ChannelKind]*commandsmock.MockChannelSender
	uc       commands.DispatchCommands
	id       string
}

func newDispatchFixture(t *testing.T, rules ...docstore.Rule) dispatchFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	clk := clock.NewMockClock(testStart)
	store := docstore.NewMemory(docstore.WithClock(clk), docstore.WithRules(rules...))
	repo := repository.NewNotificationRepository(store, time.Minute, clk, discardLogger())

	registry := channel.NewRegistry()
	senders := make(map[notification.ChannelKind]*commandsmock.MockChannelSender)
	for _, kind := range []notification.ChannelKind{notification.ChannelInApp, notification.ChannelEmail, notification.ChannelPush, notification.ChannelSMS} {
		m := commandsmock.NewMockChannelSender(ctrl)
		senders[kind] = m
		registry.Register(kind, m)
	}

	created, err := repo.Create(context.Background(), builder.NewNotificationBuilder().MustBuildDomain())
	require.NoError(t, err)

	return dispatchFixture{
		store:    store,
		repo:     repo,
		registry: registry,
		senders:  senders,
		uc:       commands.NewDispatchUseCase(repo, registry, clk, 200*time.Millisecond, discardLogger()),
		id:       created.ID,
	}
}

func (f dispatchFixture) expectSend(kind notification.ChannelKind, err error) {
	call := f.senders[kind].EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	if err != nil {
		call.Return("", err)
		return
	}
	call.Return("msg-"+string(kind), nil)
}

func TestDispatch_ScenarioPartialDelivery(t *testing.T) {
	ctx := context.Background()
	f := newDispatchFixture(t)
	f.expectSend(notification.ChannelInApp, nil)
	f.expectSend(notification.ChannelEmail, errors.New("smtp 554 rejected"))

	outcome, err := f.uc.Dispatch(ctx, f.id, []notification.ChannelDescriptor{inApp, email})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.TotalChannels)
	assert.Equal(t, 1, outcome.SuccessCount)
	assert.Equal(t, 1, outcome.FailureCount)
	assert.Equal(t, notification.StatusPartiallyDelivered, outcome.Status)

	require.Len(t, outcome.Results, 2)
	assert.True(t, outcome.Results[0].Success)
	assert.Equal(t, "msg-in_app", outcome.Results[0].MessageID)
	assert.False(t, outcome.Results[1].Success)
	assert.Contains(t, outcome.Results[1].Error, "smtp 554 rejected")

	stored, err := f.repo.FindByID(ctx, f.id)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusPartiallyDelivered, stored.Status)
	assert.Contains(t, stored.StatusReason, "email: ")
	assert.NotNil(t, stored.DeliveredAt)
}

func TestDispatch_Aggregation(t *testing.T) {
	boom := errors.New("boom")

	testCases := []struct {
		name          string
		channels      []notification.ChannelDescriptor
		failures      map[notification.ChannelKind]error
		expectSuccess int
		expectFailure int
		expectStatus  notification.Status
	}{
		{
			name:         "no channels counts as delivered",
			expectStatus: notification.StatusDelivered,
		},
		{
			name:          "all succeed",
			channels:      []notification.ChannelDescriptor{inApp, email, push, sms},
			expectSuccess: 4,
			expectStatus:  notification.StatusDelivered,
		},
		{
			name:          "one of three fails",
			channels:      []notification.ChannelDescriptor{inApp, push, sms},
			failures:      map[notification.ChannelKind]error{notification.ChannelSMS: boom},
			expectSuccess: 2,
			expectFailure: 1,
			expectStatus:  notification.StatusPartiallyDelivered,
		},
		{
			name:          "all fail",
			channels:      []notification.ChannelDescriptor{email, push},
			failures:      map[notification.ChannelKind]error{notification.ChannelEmail: boom, notification.ChannelPush: boom},
			expectFailure: 2,
			expectStatus:  notification.StatusFailed,
		},
		{
			name:          "single channel failure is failed",
			channels:      []notification.ChannelDescriptor{push},
			failures:      map[notification.ChannelKind]error{notification.ChannelPush: boom},
			expectFailure: 1,
			expectStatus:  notification.StatusFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newDispatchFixture(t)
			for _, ch := range tc.channels {
				f.expectSend(ch.Kind, tc.failures[ch.Kind])
			}

			outcome, err := f.uc.Dispatch(ctx, f.id, tc.channels)
			require.NoError(t, err)
			assert.Equal(t, len(tc.channels), outcome.TotalChannels)
			assert.Equal(t, tc.expectSuccess, outcome.SuccessCount)
			assert.Equal(t, tc.expectFailure, outcome.FailureCount)
			assert.Equal(t, outcome.TotalChannels, outcome.SuccessCount+outcome.FailureCount)
			assert.Equal(t, tc.expectStatus, outcome.Status)

			stored, err := f.repo.FindByID(ctx, f.id)
			require.NoError(t, err)
			assert.Equal(t, tc.expectStatus, stored.Status)
		})
	}
}

func TestDispatch_FailedChannelsNeverAbortOthers(t *testing.T) {
	ctx := context.Background()
	f := newDispatchFixture(t)

	f.senders[notification.ChannelInApp].EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *notification.Notification, notification.ChannelDescriptor) (string, error) {
			panic("nil map write")
		})
	f.senders[notification.ChannelPush].EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *notification.Notification, _ notification.ChannelDescriptor) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
	f.expectSend(notification.ChannelSMS, nil)

	channels := []notification.ChannelDescriptor{inApp, push, sms, {Kind: "fax", Address: "+81300000000"}}
	outcome, err := f.uc.Dispatch(ctx, f.id, channels)
	require.NoError(t, err)

	assert.Equal(t, 4, outcome.TotalChannels)
	assert.Equal(t, 1, outcome.SuccessCount)
	assert.Equal(t, 3, outcome.FailureCount)
	assert.Equal(t, notification.StatusPartiallyDelivered, outcome.Status)

	assert.Contains(t, outcome.Results[0].Error, "sender panic")
	assert.Contains(t, outcome.Results[1].Error, context.DeadlineExceeded.Error())
	assert.True(t, outcome.Results[2].Success)
	assert.Contains(t, outcome.Results[3].Error, errs.ErrUnsupportedChannel.Error())
}

func TestDispatch_InvalidAddressIsAFailedResult(t *testing.T) {
	f := newDispatchFixture(t)

	outcome, err := f.uc.Dispatch(context.Background(), f.id, []notification.ChannelDescriptor{
		{Kind: notification.ChannelEmail, Address: "not-an-email"},
	})
	require.NoError(t, err)
	assert.Equal(t, notification.StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Results[0].Error, notification.ErrInvalidAddress.Error())
	assert.True(t, errs.Is(outcome.Results[0].Cause, errs.ErrChannelDelivery))
	assert.True(t, errs.Is(outcome.Results[0].Cause, notification.ErrInvalidAddress))
}

func TestDispatch_FailureCategories(t *testing.T) {
	f := newDispatchFixture(t)
	f.expectSend(notification.ChannelPush, errors.New("gateway 503"))
	f.senders[notification.ChannelSMS].EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *notification.Notification, notification.ChannelDescriptor) (string, error) {
			panic("carrier down")
		})

	outcome, err := f.uc.Dispatch(context.Background(), f.id, []notification.ChannelDescriptor{
		{Kind: notification.ChannelEmail, Address: "not-an-email"}, push, sms,
	})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 3)
	for _, r := range outcome.Results {
		assert.False(t, r.Success)
		assert.True(t, errs.Is(r.Cause, errs.ErrChannelDelivery), "channel %s", r.Channel.Kind)
	}
}

func TestDispatch_CallerCancellationStillRecordsFinalStatus(t *testing.T) {
	f := newDispatchFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.senders[notification.ChannelInApp].EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(attemptCtx context.Context, _ *notification.Notification, _ notification.ChannelDescriptor) (string, error) {
			cancel()
			if err := attemptCtx.Err(); err != nil {
				return "", err
			}
			return "msg-in_app", nil
		})

	outcome, err := f.uc.Dispatch(ctx, f.id, []notification.ChannelDescriptor{inApp})
	require.NoError(t, err)
	assert.Equal(t, notification.StatusDelivered, outcome.Status)
	require.Error(t, ctx.Err())

	stored, err := f.repo.FindByID(context.Background(), f.id)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusDelivered, stored.Status)
}

func TestDispatch_FailuresBeforeFanOut(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown notification propagates without any write", func(t *testing.T) {
		f := newDispatchFixture(t)
		writes := f.store.Stats().Writes

		outcome, err := f.uc.Dispatch(ctx, "missing", []notification.ChannelDescriptor{inApp})
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, writes, f.store.Stats().Writes)
	})

	t.Run("sending transition rejected marks the notification failed", func(t *testing.T) {
		rejectSending := func(w docstore.Write) error {
			if w.Data.String("status") == string(notification.StatusSending) {
				return errors.New("quota exceeded")
			}
			return nil
		}
		f := newDispatchFixture(t, rejectSending)

		outcome, err := f.uc.Dispatch(ctx, f.id, []notification.ChannelDescriptor{inApp})
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, infra.IsKind(err, infra.KindPersistence))

		stored, err := f.repo.FindByID(ctx, f.id)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusFailed, stored.Status)
		assert.Contains(t, stored.StatusReason, "could not enter sending")
	})

	t.Run("final status write failure still returns the outcome", func(t *testing.T) {
		rejectDelivered := func(w docstore.Write) error {
			if w.Data.String("status") == string(notification.StatusDelivered) {
				return errors.New("quota exceeded")
			}
			return nil
		}
		f := newDispatchFixture(t, rejectDelivered)
		f.expectSend(notification.ChannelInApp, nil)

		outcome, err := f.uc.Dispatch(ctx, f.id, []notification.ChannelDescriptor{inApp})
		require.Error(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, notification.StatusDelivered, outcome.Status)
	})
}

func TestDispatch_WithRepositoryMock(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := commandsmock.NewMockNotificationRepository(ctrl)
	lookup := commandsmock.NewMockSenderLookup(ctrl)
	loadErr := infra.WrapRepoErr(discardLogger(), infra.KindPersistence, "failed to find by id", errors.New("unavailable"))
	gomock.InOrder(
		repo.EXPECT().FindByID(ctx, "n1").Return(nil, loadErr),
		repo.EXPECT().UpdateStatus(ctx, "n1", notification.StatusFailed, gomock.Any()).Return(nil, loadErr),
	)

	uc := commands.NewDispatchUseCase(repo, lookup, clock.NewMockClock(testStart), 0, discardLogger())
	_, err := uc.Dispatch(ctx, "n1", []notification.ChannelDescriptor{inApp})
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindPersistence))
}
