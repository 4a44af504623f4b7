package bootstrap

import (
	"sitehub/cmd/bootstrap/components"
	"sitehub/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// Module assembles the whole service. The e2e harness reuses everything except
// ConfigModule and DBModule.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.StoreModule,
	components.RepositoryModule,
	components.ChannelModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.JobModule,
)
