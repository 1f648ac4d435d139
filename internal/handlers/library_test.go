package handlers_test

import (
	"testing"

	"github.com/playvault/playvault/internal/models"
)

// TestGetLibraryBeforeFirstPurchase verifies the 404 for users without
// a library record
func TestGetLibraryBeforeFirstPurchase(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokens()
	app := newTestApp(db, tokens)

	user := createTestUser(t, db, "alice@example.com", "pw", models.RoleUser)

	resp := doRequest(t, app, "GET", "/api/library", tokenFor(t, tokens, user), nil)
	if resp.StatusCode != 404 {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestLibraryAddAndGet tests the direct-add round trip
func TestLibraryAddAndGet(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokens()
	app := newTestApp(db, tokens)

	user := createTestUser(t, db, "alice@example.com", "pw", models.RoleUser)
	game := createTestGame(t, db, 10, "Counter Tactics")
	token := tokenFor(t, tokens, user)

	resp := doRequest(t, app, "POST", "/api/library", token, map[string]uint{"gameId": game.ID})
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 on add, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "GET", "/api/library", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result struct {
		Library models.Library `json:"library"`
	}
	decodeBody(t, resp, &result)
	if len(result.Library.Games) != 1 || result.Library.Games[0].ID != game.ID {
		t.Fatalf("Expected the added game in the library, got %v", result.Library.Games)
	}
}

// TestLibraryDuplicateAdd verifies that owned games cannot be re-added
func TestLibraryDuplicateAdd(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokens()
	app := newTestApp(db, tokens)

	user := createTestUser(t, db, "alice@example.com", "pw", models.RoleUser)
	game := createTestGame(t, db, 10, "Counter Tactics")
	token := tokenFor(t, tokens, user)
	body := map[string]uint{"gameId": game.ID}

	resp := doRequest(t, app, "POST", "/api/library", token, body)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 on first add, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "POST", "/api/library", token, body)
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400 on duplicate add, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	decodeBody(t, resp, &result)
	if result["message"] != "game already in library" {
		t.Errorf("Unexpected message: %v", result["message"])
	}
}

// TestLibraryRemove tests the DELETE /api/library/:gameId endpoint
func TestLibraryRemove(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokens()
	app := newTestApp(db, tokens)

	user := createTestUser(t, db, "alice@example.com", "pw", models.RoleUser)
	game := createTestGame(t, db, 10, "Counter Tactics")
	token := tokenFor(t, tokens, user)

	resp := doRequest(t, app, "POST", "/api/library", token, map[string]uint{"gameId": game.ID})
	if resp.StatusCode != 200 {
		t.Fatalf("Failed to seed library: status %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "DELETE", "/api/library/"+itoa(game.ID), token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 on remove, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "GET", "/api/library", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result struct {
		Library models.Library `json:"library"`
	}
	decodeBody(t, resp, &result)
	if len(result.Library.Games) != 0 {
		t.Errorf("Expected an empty library after removal, got %d games", len(result.Library.Games))
	}

	// Removing a game that is not owned is an error.
	resp = doRequest(t, app, "DELETE", "/api/library/"+itoa(game.ID), token, nil)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for unowned game, got %d", resp.StatusCode)
	}
}
