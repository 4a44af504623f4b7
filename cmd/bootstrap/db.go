package bootstrap

import (
	"context"

	"sitehub/cmd/bootstrap/components"
	"sitehub/internal/infra/db"
	"sitehub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewPoolOpener,
	),
)

// NewPoolOpener connects lazily so the memory store driver never dials PostgreSQL.
func NewPoolOpener(lc fx.Lifecycle, cfg config.Config) components.PoolOpener {
	return func() (*pgxpool.Pool, error) {
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})

		return pool, nil
	}
}
