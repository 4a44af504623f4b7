package components

import (
	"log/slog"

	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/usecase"
	"sitehub/internal/usecase/commands"
	"sitehub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewNotificationUseCase,
		commands.NewTeamUseCase,
		NewDispatchUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewNotificationQueries,
		queries.NewStatisticsQueries,
		queries.NewTeamQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewDispatchUseCase(repo commands.NotificationRepository, senders commands.SenderLookup, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.DispatchCommands {
	return commands.NewDispatchUseCase(repo, senders, clk, cfg.Dispatch.ChannelTimeout, logger.With("usecase", "dispatch"))
}
