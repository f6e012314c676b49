// Package routes defines the API routing configuration. It builds the
// service graph and attaches every handler to the fiber app.
package routes

import (
	"payflow/internal/config"
	"payflow/internal/handlers"
	"payflow/internal/middleware"
	"payflow/internal/repositories"
	"payflow/internal/services/auth"
	"payflow/internal/services/notification"
	"payflow/internal/services/transfer"
	"payflow/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups the core services the router wires up. The transfer
// pool is owned by main so shutdown can drain in-flight runs.
type Services struct {
	Auth          auth.Service
	Users         user.Service
	Transfers     transfer.Service
	Notifications notification.Service
}

// BuildServices constructs the full service graph on top of the shared
// repositories.
func BuildServices(pool *transfer.Pool, metrics transfer.MetricsCollector, engineCfg transfer.Config) Services {
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	transferRepo := repositories.NewTransferRepository(repositories.DB)
	notificationRepo := repositories.NewNotificationRepository(repositories.DB)

	notificationSvc := notification.NewService(notificationRepo, repositories.CacheService)

	engine := transfer.NewEngine(
		transferRepo,
		userRepo,
		notificationSvc,
		transfer.NewClock(),
		transfer.NewRand(),
		metrics,
		engineCfg,
	)

	return Services{
		Auth:          auth.NewService(userRepo, config.GetEnv("JWT_SECRET", "payflow")),
		Users:         user.NewService(userRepo),
		Transfers:     transfer.NewService(transferRepo, userRepo, engine, pool, metrics),
		Notifications: notificationSvc,
	}
}

// SetupRoutes attaches all application routes.
func SetupRoutes(app *fiber.App, svcs Services) {
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	notificationRepo := repositories.NewNotificationRepository(repositories.DB)

	authHandler := handlers.NewAuthHandler(svcs.Auth)
	transferHandler := handlers.NewTransferHandler(svcs.Transfers)
	notificationHandler := handlers.NewNotificationHandler(svcs.Notifications, repositories.CacheService)
	dashboardHandler := handlers.NewDashboardHandler(svcs.Transfers, svcs.Users, notificationRepo)
	healthHandler := handlers.NewHealthHandler(repositories.DB)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, config.GetEnv("JWT_SECRET", "payflow"))

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	authed := api.Group("", authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)

	authed.Get("/dashboard", dashboardHandler.Dashboard)

	authed.Post("/transfers", transferHandler.Create)
	authed.Get("/transfers", transferHandler.List)
	authed.Get("/transfers/:id", transferHandler.Get)

	authed.Get("/notifications", notificationHandler.ListUnannounced)
	authed.Get("/notifications/stream", notificationHandler.Stream)
	authed.Post("/notifications/:id/announced", notificationHandler.MarkAnnounced)
	authed.Post("/notifications/:id/read", notificationHandler.MarkRead)
}
