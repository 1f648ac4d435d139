package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/playvault/playvault/internal/config"
	"github.com/playvault/playvault/internal/database"
	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/security"
	"github.com/playvault/playvault/internal/services"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestWithMySQL tests the service layer against a real MySQL container
func TestWithMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	mysqlContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	defer func() {
		if err := mysqlContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MySQL container: %v", err)
		}
	}()

	host, err := mysqlContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mysqlContainer.MappedPort(ctx, nat.Port("3306/tcp"))
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	runServiceSuite(t, db)
}

// TestWithPostgreSQL tests the service layer against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	runServiceSuite(t, db)
}

// runServiceSuite exercises the purchase flow end to end on a real
// database: register, catalog, cart, checkout, library, wishlist.
func runServiceSuite(t *testing.T, db *gorm.DB) {
	t.Run("RegisterAndAuthenticate", func(t *testing.T) {
		testRegisterAndAuthenticate(t, db)
	})
	t.Run("DuplicateEmail", func(t *testing.T) {
		testDuplicateEmail(t, db)
	})
	t.Run("PurchaseFlow", func(t *testing.T) {
		testPurchaseFlow(t, db)
	})
	t.Run("CommentUniqueness", func(t *testing.T) {
		testCommentUniqueness(t, db)
	})
	t.Run("CatalogUpsert", func(t *testing.T) {
		testCatalogUpsert(t, db)
	})
	t.Run("GenreFilter", func(t *testing.T) {
		testGenreFilter(t, db)
	})
}

func testRegisterAndAuthenticate(t *testing.T, db *gorm.DB) {
	user, err := services.RegisterUser(db, services.RegisterInput{
		Name:     "Alice",
		Email:    "alice@integration.test",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("Expected a generated user id")
	}
	if err := security.CheckPassword(user.Password, "s3cret"); err != nil {
		t.Errorf("Expected stored hash to verify: %v", err)
	}

	authed, err := services.AuthenticateUser(db, "alice@integration.test", "s3cret")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("Expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := services.AuthenticateUser(db, "alice@integration.test", "wrong"); err != services.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func testDuplicateEmail(t *testing.T, db *gorm.DB) {
	input := services.RegisterInput{
		Name:     "Bob",
		Email:    "bob@integration.test",
		Password: "pw",
	}
	if _, err := services.RegisterUser(db, input); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if _, err := services.RegisterUser(db, input); err != services.ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func testPurchaseFlow(t *testing.T, db *gorm.DB) {
	user, err := services.RegisterUser(db, services.RegisterInput{
		Name:     "Carol",
		Email:    "carol@integration.test",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	game := &models.Game{AppID: 7010, Name: "Integration Quest", Price: 14.99}
	if err := services.CreateGame(db, game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	// Library 404 before first purchase.
	if _, err := services.GetLibrary(db, user.ID); err != services.ErrNotFound {
		t.Errorf("Expected ErrNotFound before first purchase, got %v", err)
	}

	// Add twice: one row, quantity 2.
	if _, err := services.AddCartItem(db, user.ID, game.ID); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}
	item, err := services.AddCartItem(db, user.ID, game.ID)
	if err != nil {
		t.Fatalf("Failed to add to cart again: %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", item.Quantity)
	}

	library, err := services.Checkout(db, user.ID)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if len(library.Games) != 1 {
		t.Fatalf("Expected 1 game in library, got %d", len(library.Games))
	}

	items, err := services.GetCartItems(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to load cart: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected the cart to be emptied, got %d rows", len(items))
	}

	// A second checkout on the empty cart is rejected.
	if _, err := services.Checkout(db, user.ID); err != services.ErrEmptyCart {
		t.Errorf("Expected ErrEmptyCart, got %v", err)
	}

	// Wishlist round trip on the same account.
	if err := services.AddToWishlist(db, user.ID, game.ID); err != nil {
		t.Fatalf("Failed to add to wishlist: %v", err)
	}
	if err := services.AddToWishlist(db, user.ID, game.ID); err != services.ErrAlreadyInWishlist {
		t.Errorf("Expected ErrAlreadyInWishlist, got %v", err)
	}
	if err := services.RemoveFromWishlist(db, user.ID, game.ID); err != nil {
		t.Fatalf("Failed to remove from wishlist: %v", err)
	}
}

func testCommentUniqueness(t *testing.T, db *gorm.DB) {
	user, err := services.RegisterUser(db, services.RegisterInput{
		Name:     "Dave",
		Email:    "dave@integration.test",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	game := &models.Game{AppID: 7020, Name: "Review Target", Price: 4.99}
	if err := services.CreateGame(db, game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	if _, err := services.AddComment(db, user.ID, game.AppID, "First impressions"); err != nil {
		t.Fatalf("Failed to add comment: %v", err)
	}
	if _, err := services.AddComment(db, user.ID, game.AppID, "Second thoughts"); err != services.ErrAlreadyCommented {
		t.Errorf("Expected ErrAlreadyCommented, got %v", err)
	}
}

// testGenreFilter exercises the genre LIKE filter against the dialect's
// native JSON column type, which needs a text cast on mysql and postgres.
func testGenreFilter(t *testing.T, db *gorm.DB) {
	action := &models.Game{
		AppID:  7040,
		Name:   "Genre Filter Action",
		Genres: datatypes.JSON(`[{"id":"1","description":"Action"}]`),
	}
	indie := &models.Game{
		AppID:  7041,
		Name:   "Genre Filter Indie",
		Genres: datatypes.JSON(`[{"id":"23","description":"Indie"}]`),
	}
	for _, game := range []*models.Game{action, indie} {
		if err := services.CreateGame(db, game); err != nil {
			t.Fatalf("Failed to create game %d: %v", game.AppID, err)
		}
	}

	games, err := services.ListGames(db, services.GameFilters{Genre: "Action"})
	if err != nil {
		t.Fatalf("Genre filter query failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 game for genre Action, got %d", len(games))
	}
	if games[0].AppID != 7040 {
		t.Errorf("Expected appid 7040, got %d", games[0].AppID)
	}
}

func testCatalogUpsert(t *testing.T, db *gorm.DB) {
	game := &models.Game{AppID: 7030, Name: "Before Sync", Price: 9.99}
	if err := services.CreateGame(db, game); err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	if err := services.UpsertGame(db, &models.Game{AppID: 7030, Name: "After Sync", Price: 19.99}); err != nil {
		t.Fatalf("Failed to upsert game: %v", err)
	}

	updated, err := services.GetGameByAppID(db, 7030)
	if err != nil {
		t.Fatalf("Failed to reload game: %v", err)
	}
	if updated.ID != game.ID {
		t.Errorf("Expected identity to be preserved, got id %d vs %d", updated.ID, game.ID)
	}
	if updated.Name != "After Sync" || updated.Price != 19.99 {
		t.Errorf("Expected refreshed fields, got %+v", updated)
	}
}
