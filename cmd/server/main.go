package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookloan/internal/adapters/http/middleware"
	"bookloan/internal/adapters/http/routes"
	"bookloan/internal/adapters/persistence"
	"bookloan/internal/config"
	"bookloan/internal/core/services"
	"bookloan/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"

	_ "bookloan/docs" // Swagger docs
)

// @title bookloan API
// @version 1.0
// @description Library catalog and lending accounts with capability-based authorization. Book routes are mounted under /books: POST /books/create and GET|PUT|DELETE /books/{id}.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Setup(os.Getenv("APP_MODE"))
	log := logger.With("server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	logger.Setup(cfg.AppMode)

	// Connect to store and migrate
	backend, err := persistence.Open(cfg, true)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Error("failed to close store")
		}
	}()

	// Seed admin account and demo data
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.NewSeeder(backend.Stores, cfg).Run(seedCtx); err != nil {
		log.WithError(err).Warn("seeding failed")
	}
	cancel()

	// Purge expired denylist entries hourly
	cronService := services.NewCronService(backend.Stores.RevokedTokens)
	if err := cronService.Start(); err != nil {
		log.WithError(err).Fatal("failed to start cron")
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "bookloan API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, backend.Stores, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.WithField("port", cfg.Port).WithField("mode", cfg.AppMode).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("server stopped with error")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log := logger.With("server")
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server stopped gracefully")
}
