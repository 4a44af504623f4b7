package components

import (
	"sitehub/internal/handler"
	"sitehub/internal/handler/api"
	"sitehub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewNotificationHandler,
		api.NewTeamHandler,
		middleware.NewAuthMiddleware,
		func(n *api.NotificationHandler, t *api.TeamHandler) handler.Handlers {
			return handler.Handlers{Notification: n, Team: t}
		},
	),
	fx.Invoke(handler.NewRouter),
)
