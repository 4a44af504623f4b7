package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sitehub/internal/domain/user"
	"sitehub/internal/handler/api"
	"sitehub/internal/handler/middleware"
	"sitehub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Notification *api.NotificationHandler
	Team         *api.TeamHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		notifications := apiGroup.Group("/notifications")
		{
			// static segments are registered before /:id so they never match as ids
			addRoutes(notifications, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Notification.Create},
				{Method: http.MethodPost, Path: "/batch", Handler: h.Notification.BatchCreate},
				{Method: http.MethodGet, Path: "", Handler: h.Notification.List},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Notification.Stats},
				{Method: http.MethodGet, Path: "/watch", Handler: h.Notification.Watch},
				{Method: http.MethodPut, Path: "/read-all", Handler: h.Notification.MarkAllAsRead},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Notification.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Notification.Update},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Notification.UpdateStatus},
				{Method: http.MethodPut, Path: "/:id/read", Handler: h.Notification.MarkAsRead},
				{Method: http.MethodPut, Path: "/:id/archive", Handler: h.Notification.Archive},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Notification.Delete},
				{
					Method:  http.MethodPost,
					Path:    "/:id/dispatch",
					Handler: h.Notification.Dispatch,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)},
				},
			})
		}

		teams := apiGroup.Group("/teams")
		{
			addRoutes(teams, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Team.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Team.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Team.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Team.Update},
				{Method: http.MethodPost, Path: "/:id/members", Handler: h.Team.AddMember},
				{Method: http.MethodDelete, Path: "/:id/members/:userId", Handler: h.Team.RemoveMember},
				{Method: http.MethodPut, Path: "/:id/archive", Handler: h.Team.Archive},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Team.Delete},
			})
		}

		apiGroup.GET("/projects/:projectId/teams", h.Team.ListByProject)
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
