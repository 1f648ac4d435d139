package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/playvault/playvault/internal/auth"
	"github.com/playvault/playvault/internal/config"
	"github.com/playvault/playvault/internal/database"
	"github.com/playvault/playvault/internal/handlers"
	"github.com/playvault/playvault/internal/jobs"
	"github.com/playvault/playvault/internal/logger"
	"github.com/playvault/playvault/internal/middleware"
	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/steam"
	"github.com/playvault/playvault/internal/types"

	_ "github.com/playvault/playvault/docs/api" // Swagger docs
)

// @title PlayVault API
// @version 1.0.0
// @description Game store backend: catalog, cart, library, wishlist, coupons

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("playvault")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens, Log: appLog}
	gameHandler := &handlers.GameHandler{DB: db}
	commentHandler := &handlers.CommentHandler{DB: db}
	couponHandler := &handlers.CouponHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	libraryHandler := &handlers.LibraryHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	userHandler := &handlers.UserHandler{}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	authd := middleware.Authenticate(tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	// API routes under /api
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Games (public read, admin write)
	api.Get("/games", gameHandler.List)
	api.Get("/games/featured", gameHandler.Featured)
	api.Get("/games/:appid", gameHandler.Detail)
	api.Post("/games", authd, admin, gameHandler.Create)
	api.Put("/games/:appid", authd, admin, gameHandler.Update)
	api.Delete("/games/:appid", authd, admin, gameHandler.Delete)

	// Comments (public read, authenticated write, write-own edit/delete)
	api.Get("/games/:gameId/comments", commentHandler.List)
	api.Post("/games/:gameId/comments", authd, commentHandler.Add)
	api.Put("/comments/:commentId", authd, commentHandler.Update)
	api.Delete("/comments/:commentId", authd, commentHandler.Delete)

	// Coupons
	api.Post("/cupons/validate", couponHandler.Validate)
	api.Post("/cupons", authd, admin, couponHandler.Create)

	// Cart
	api.Get("/cart", authd, cartHandler.List)
	api.Post("/cart", authd, cartHandler.Add)
	api.Post("/cart/checkout", authd, cartHandler.Checkout)
	api.Put("/cart/:itemId", authd, cartHandler.UpdateQuantity)
	api.Delete("/cart/:itemId", authd, cartHandler.Remove)

	// Wishlist
	api.Get("/wishlist", authd, wishlistHandler.Get)
	api.Post("/wishlist/:gameId", authd, wishlistHandler.Add)
	api.Delete("/wishlist/:gameId", authd, wishlistHandler.Remove)

	// Library
	api.Get("/library", authd, libraryHandler.Get)
	api.Post("/library", authd, libraryHandler.Add)
	api.Delete("/library/:gameId", authd, libraryHandler.Remove)

	// User
	api.Get("/user/profile", authd, userHandler.Profile)
	api.Get("/user/admin", authd, admin, userHandler.Admin)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Monthly catalog sync
	syncer := &jobs.Syncer{
		DB:    db,
		Steam: steam.NewClient(cfg.SteamListURL, cfg.SteamDetailsURL),
		Log:   appLog,
		Limit: cfg.SyncLimit,
	}
	scheduler, err := syncer.Schedule(cfg.SyncSchedule)
	if err != nil {
		log.Fatalf("Failed to schedule catalog sync: %v", err)
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		<-scheduler.Stop().Done()
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var apiErr *types.ApiError
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
		errorType = apiErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
