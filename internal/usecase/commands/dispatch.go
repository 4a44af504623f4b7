package commands

import (
	"context"
	"log/slog"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const DefaultChannelTimeout = 10 * time.Second

//go:generate mockgen -source=dispatch.go -destination=../../../tests/mock/commands/mock_dispatch.go -package=commandsmock

type DispatchCommands interface {
	// Dispatch delivers a stored notification over every channel and records
	// exactly one final status for the attempt.
	Dispatch(ctx context.Context, notificationID string, channels []notification.ChannelDescriptor) (*notification.DeliveryOutcome, error)
}

type dispatchUseCaseImpl struct {
	repo    NotificationRepository
	senders SenderLookup
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

func NewDispatchUseCase(repo NotificationRepository, senders SenderLookup, clk clock.Clock, timeout time.Duration, logger *slog.Logger) DispatchCommands {
	if timeout <= 0 {
		timeout = DefaultChannelTimeout
	}
	return &dispatchUseCaseImpl{
		repo:    repo,
		senders: senders,
		clock:   clk,
		timeout: timeout,
		logger:  logger,
	}
}

func (uc *dispatchUseCaseImpl) Dispatch(ctx context.Context, notificationID string, channels []notification.ChannelDescriptor) (*notification.DeliveryOutcome, error) {
	log := uc.logger.With(slog.String("notification_id", notificationID))

	n, err := uc.repo.FindByID(ctx, notificationID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			uc.markFailed(ctx, log, notificationID, "load failed: "+err.Error())
		}
		return nil, err
	}

	// Once loaded, the dispatch must reach a final status even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	if _, err := uc.repo.UpdateStatus(ctx, notificationID, notification.StatusSending, ""); err != nil {
		uc.markFailed(ctx, log, notificationID, "could not enter sending: "+err.Error())
		return nil, err
	}

	results := make([]notification.ChannelResult, len(channels))
	var g errgroup.Group
	for i, ch := range channels {
		g.Go(func() error {
			results[i] = uc.attempt(ctx, n, ch)
			return nil
		})
	}
	_ = g.Wait()

	outcome := notification.NewDeliveryOutcome(notificationID, results, uc.clock.Now())
	if _, err := uc.repo.UpdateStatus(ctx, notificationID, outcome.Status, outcome.FailureSummary()); err != nil {
		log.Error("failed to record delivery outcome",
			slog.String("status", string(outcome.Status)),
			slog.String("error", err.Error()))
		return outcome, err
	}

	log.Info("notification dispatched",
		slog.String("status", string(outcome.Status)),
		slog.Int("channels", outcome.TotalChannels),
		slog.Int("failures", outcome.FailureCount))
	return outcome, nil
}

// attempt runs one channel in isolation. It never returns an error: failures,
// timeouts and panics all become a failed result.
func (uc *dispatchUseCaseImpl) attempt(ctx context.Context, n *notification.Notification, ch notification.ChannelDescriptor) (result notification.ChannelResult) {
	result.Channel = ch
	defer func() {
		if r := recover(); r != nil {
			result = uc.failed(ch, errs.Mark(errs.Newf("sender panic: %v", r), errs.ErrChannelDelivery))
		}
	}()

	sender, ok := uc.senders.Lookup(ch.Kind)
	if !ok {
		return uc.failed(ch, errs.Mark(errs.Newf("channel %q", ch.Kind), errs.ErrUnsupportedChannel))
	}
	if err := ch.ValidateAddress(); err != nil {
		return uc.failed(ch, errs.Mark(err, errs.ErrChannelDelivery))
	}

	attemptCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	messageID, err := sender.Send(attemptCtx, n, ch)
	if err != nil {
		return uc.failed(ch, errs.Mark(err, errs.ErrChannelDelivery))
	}
	return notification.ChannelResult{
		Channel:     ch,
		Success:     true,
		MessageID:   messageID,
		CompletedAt: uc.clock.Now(),
	}
}

func (uc *dispatchUseCaseImpl) failed(ch notification.ChannelDescriptor, err error) notification.ChannelResult {
	uc.logger.Warn("channel delivery failed",
		slog.String("channel", string(ch.Kind)),
		slog.String("error", err.Error()))
	return notification.ChannelResult{
		Channel:     ch,
		Error:       err.Error(),
		CompletedAt: uc.clock.Now(),
		Cause:       err,
	}
}

// markFailed is best effort; the caller already has an error to return.
func (uc *dispatchUseCaseImpl) markFailed(ctx context.Context, log *slog.Logger, id, reason string) {
	if _, err := uc.repo.UpdateStatus(ctx, id, notification.StatusFailed, reason); err != nil {
		log.Error("failed to mark notification failed", slog.String("error", err.Error()))
	}
}
