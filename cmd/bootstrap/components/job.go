package components

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sitehub/internal/infra/repository"
	"sitehub/internal/pkg/config"
	"sitehub/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobModule = fx.Module("job",
	fx.Invoke(StartBackgroundJobs),
)

type jobParams struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Config        config.Config
	Logger        *slog.Logger
	Notifications *repository.NotificationRepository
	Teams         *repository.TeamRepository
	Commands      commands.NotificationCommands
}

// StartBackgroundJobs runs the cache sweepers and the expired-notification cleanup
// for the lifetime of the app.
func StartBackgroundJobs(p jobParams) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	run := func(fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			run(p.Notifications.StartSweeper)
			run(p.Teams.StartSweeper)
			run(func(ctx context.Context) {
				cleanupExpired(ctx, p.Commands, p.Config.Cleanup.ExpiredInterval, p.Logger)
			})
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}

func cleanupExpired(ctx context.Context, cmds commands.NotificationCommands, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := cmds.DeleteExpired(ctx)
			if err != nil {
				logger.Error("expired notification cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("deleted expired notifications", "count", n)
			}
		}
	}
}
