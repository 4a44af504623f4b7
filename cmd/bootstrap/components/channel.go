package components

import (
	"context"
	"log/slog"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/channel"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/usecase/commands"

	"go.uber.org/fx"
)

var ChannelModule = fx.Module("channel",
	fx.Provide(
		fx.Annotate(
			NewChannelRegistry,
			fx.As(new(commands.SenderLookup)),
		),
	),
)

// NewChannelRegistry registers in-app delivery always; email, push and SMS only
// when their transport is configured. Missing kinds fail as unsupported.
func NewChannelRegistry(lc fx.Lifecycle, cfg config.Config, store docstore.Store, clk clock.Clock, logger *slog.Logger) (*channel.Registry, error) {
	registry := channel.NewRegistry().
		Register(notification.ChannelInApp, channel.NewInAppSender(store, clk))

	if cfg.SMTP.Enabled() {
		registry.Register(notification.ChannelEmail, channel.NewEmailSender(cfg.SMTP, clk))
	}

	if cfg.Kafka.Enabled() {
		producer, err := channel.NewPushProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		push := channel.NewPushSender(producer, cfg.Kafka.PushTopic, clk)
		sms := channel.NewSMSSender(channel.NewSMSWriter(cfg.Kafka), clk)
		registry.Register(notification.ChannelPush, push).
			Register(notification.ChannelSMS, sms)

		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if err := push.Close(); err != nil {
					logger.Warn("failed to close push producer", "error", err)
				}
				return sms.Close()
			},
		})
	}

	logger.Info("delivery channels ready", "kinds", registry.Kinds())
	return registry, nil
}
