package components

import (
	"log/slog"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/usecase/commands"
	"sitehub/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewNotificationRepository,
		NewTeamRepository,
		fx.Annotate(
			func(r *repository.NotificationRepository) *repository.NotificationRepository { return r },
			fx.As(new(commands.NotificationRepository)),
			fx.As(new(queries.NotificationReadStore)),
			fx.As(new(queries.NotificationCounter)),
		),
		fx.Annotate(
			func(r *repository.TeamRepository) *repository.TeamRepository { return r },
			fx.As(new(commands.TeamRepository)),
			fx.As(new(queries.TeamReadStore)),
		),
	),
)

func NewNotificationRepository(store docstore.Store, cfg config.Config, clk clock.Clock, logger *slog.Logger) *repository.NotificationRepository {
	return repository.NewNotificationRepository(store, cfg.Cache.NotificationTTL, clk, logger.With("repository", "notification"))
}

func NewTeamRepository(store docstore.Store, cfg config.Config, clk clock.Clock, logger *slog.Logger) *repository.TeamRepository {
	return repository.NewTeamRepository(store, cfg.Cache.TeamTTL, clk, logger.With("repository", "team"))
}
