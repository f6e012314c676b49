// Package main is the entry point for the application. It initializes
// all dependencies, sets up the HTTP server, and starts the
// application.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payflow/internal/config"
	"payflow/internal/metrics"
	"payflow/internal/repositories"
	"payflow/internal/routes"
	"payflow/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Transfer engine configuration
	engineCfg := transfer.Config{
		SuccessRate:   config.GetFloatEnv("TRANSFER_SUCCESS_RATE", transfer.DefaultSuccessRate),
		SettleDelay:   config.GetDurationEnv("TRANSFER_SETTLE_DELAY", transfer.DefaultSettleDelay),
		ClearingDelay: config.GetDurationEnv("TRANSFER_CLEARING_DELAY", transfer.DefaultClearingDelay),
		RefundDelay:   config.GetDurationEnv("TRANSFER_REFUND_DELAY", transfer.DefaultRefundDelay),
		RunTimeout:    config.GetDurationEnv("TRANSFER_RUN_TIMEOUT", 0),
		Workers:       config.GetIntEnv("TRANSFER_WORKERS", transfer.DefaultWorkers),
		QueueSize:     config.GetIntEnv("TRANSFER_QUEUE_SIZE", transfer.DefaultQueueSize),
	}

	pool := transfer.NewPool(engineCfg.Workers, engineCfg.QueueSize)
	collector := metrics.NewTransferCollector()

	svcs := routes.BuildServices(pool, collector, engineCfg)

	// Create Fiber app
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	// Routes
	routes.SetupRoutes(app, svcs)

	// Drain in-flight transfer runs before exiting
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down: draining transfer runs")
		pool.Shutdown()
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(":" + config.GetEnv("PORT", "3000")); err != nil {
		log.Fatal(err)
	}
}
