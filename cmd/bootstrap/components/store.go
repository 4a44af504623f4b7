package components

import (
	"context"
	"log/slog"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/docstore/pgstore"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PoolOpener hands out the PostgreSQL pool on first use.
type PoolOpener func() (*pgxpool.Pool, error)

var StoreModule = fx.Module("store",
	fx.Provide(
		clock.NewRealClock,
		NewDocumentStore,
	),
)

func NewDocumentStore(lc fx.Lifecycle, cfg config.Config, openPool PoolOpener, clk clock.Clock, logger *slog.Logger) (docstore.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem := docstore.NewMemory(docstore.WithClock(clk))
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				mem.Close()
				return nil
			},
		})
		logger.Warn("using the in-memory document store; data is lost on restart")
		return mem, nil

	default:
		pool, err := openPool()
		if err != nil {
			return nil, err
		}
		store := pgstore.New(pool, logger)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.EnsureSchema(ctx)
			},
			// registered after the pool hook, so it runs before the pool closes
			OnStop: func(_ context.Context) error {
				store.Close()
				return nil
			},
		})
		return store, nil
	}
}
