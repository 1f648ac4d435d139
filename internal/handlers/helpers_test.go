package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/auth"
	"github.com/playvault/playvault/internal/handlers"
	"github.com/playvault/playvault/internal/logger"
	"github.com/playvault/playvault/internal/middleware"
	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/security"
	"github.com/playvault/playvault/internal/types"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Comment{},
		&models.Coupon{},
		&models.CartItem{},
		&models.Library{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestTokens returns a token manager with a fixed secret and a
// one-hour lifetime.
func newTestTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

// newTestApp builds a Fiber app with the full API route table, wired
// against the given database and token manager.
func newTestApp(db *gorm.DB, tokens *auth.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: testErrorHandler,
	})

	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens, Log: logger.Nop()}
	gameHandler := &handlers.GameHandler{DB: db}
	commentHandler := &handlers.CommentHandler{DB: db}
	couponHandler := &handlers.CouponHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	libraryHandler := &handlers.LibraryHandler{DB: db}
	userHandler := &handlers.UserHandler{}

	authd := middleware.Authenticate(tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	api := app.Group("/api")

	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Get("/games", gameHandler.List)
	api.Get("/games/featured", gameHandler.Featured)
	api.Get("/games/:appid", gameHandler.Detail)
	api.Post("/games", authd, admin, gameHandler.Create)
	api.Put("/games/:appid", authd, admin, gameHandler.Update)
	api.Delete("/games/:appid", authd, admin, gameHandler.Delete)

	api.Get("/games/:gameId/comments", commentHandler.List)
	api.Post("/games/:gameId/comments", authd, commentHandler.Add)
	api.Put("/comments/:commentId", authd, commentHandler.Update)
	api.Delete("/comments/:commentId", authd, commentHandler.Delete)

	api.Post("/cupons/validate", couponHandler.Validate)
	api.Post("/cupons", authd, admin, couponHandler.Create)

	api.Get("/cart", authd, cartHandler.List)
	api.Post("/cart", authd, cartHandler.Add)
	api.Post("/cart/checkout", authd, cartHandler.Checkout)
	api.Put("/cart/:itemId", authd, cartHandler.UpdateQuantity)
	api.Delete("/cart/:itemId", authd, cartHandler.Remove)

	api.Get("/wishlist", authd, wishlistHandler.Get)
	api.Post("/wishlist/:gameId", authd, wishlistHandler.Add)
	api.Delete("/wishlist/:gameId", authd, wishlistHandler.Remove)

	api.Get("/library", authd, libraryHandler.Get)
	api.Post("/library", authd, libraryHandler.Add)
	api.Delete("/library/:gameId", authd, libraryHandler.Remove)

	api.Get("/user/profile", authd, userHandler.Profile)
	api.Get("/user/admin", authd, admin, userHandler.Admin)

	return app
}

// testErrorHandler mirrors the server's global error handler so that
// middleware errors surface as the JSON envelope in tests too.
func testErrorHandler(c *fiber.Ctx, err error) error {
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
		"status":  code,
		"message": message,
		"ok":      false,
		"type":    errorType,
	})
}

// createTestUser inserts a user with a hashed password and returns it.
func createTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()

	hashed, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// tokenFor issues a bearer token for the given user.
func tokenFor(t *testing.T, tokens *auth.Manager, user *models.User) string {
	t.Helper()

	token, err := tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// createTestGame inserts a catalog entry with the given appid.
func createTestGame(t *testing.T, db *gorm.DB, appID uint, name string) *models.Game {
	t.Helper()

	game := &models.Game{
		AppID:       appID,
		Name:        name,
		Type:        "game",
		Price:       19.99,
		HeaderImage: "https://cdn.example.com/" + name + ".jpg",
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("Failed to create test game: %v", err)
	}
	return game
}

// doRequest performs a JSON request against the test app. A non-empty
// token is attached as a bearer credential.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

// itoa formats a uint id for building request paths.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// decodeBody decodes a JSON response body into out.
func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
