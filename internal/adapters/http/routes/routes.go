package routes

import (
	"time"

	"bookloan/internal/adapters/http/handlers"
	"bookloan/internal/adapters/http/middleware"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/config"
	"bookloan/internal/core/services"
	"bookloan/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// bookListMaxAge is how long clients may cache the public book listing
const bookListMaxAge = 30 * time.Second

// Setup configures all routes for the application
func Setup(app *fiber.App, stores *repositories.Stores, cfg *config.Config) {
	// Initialize services
	hasher := password.NewHasher(cfg.Security.BcryptCost)
	gate := services.NewGate(cfg.Security.StrictCapabilityEdits)
	tokenService := services.NewTokenService(cfg, stores.RevokedTokens)
	authService := services.NewAuthService(stores.Users, tokenService, hasher)
	userService := services.NewUserService(stores.Users, gate, hasher)
	bookService := services.NewBookService(stores.Books, gate)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, stores.Ping)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService)

	requireAuth := middleware.AuthMiddleware(tokenService)
	authLimit := middleware.AuthRateLimiter(cfg)

	// Health check, metrics & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", middleware.MetricsHandler())

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public), one shared counter per IP
	app.Post("/register", authLimit, authHandler.Register)
	app.Post("/login", authLimit, authHandler.Login)

	// Session routes
	authRoutes := app.Group("/auth", requireAuth, middleware.NoStore())
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	// User routes
	userRoutes := app.Group("/users", requireAuth, middleware.NoStore())
	setupUserRoutes(userRoutes, userHandler)

	// Book routes (reads are public)
	bookRoutes := app.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, requireAuth)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, requireAuth fiber.Handler) {
	// Public
	router.Get("/", middleware.CacheControl(bookListMaxAge), handler.ListBooks)
	router.Get("/:id", handler.GetBook)

	// Protected
	router.Post("/create", requireAuth, handler.CreateBook)
	router.Put("/:id", requireAuth, handler.UpdateBook)
	router.Delete("/:id", requireAuth, handler.DeleteBook)
}
