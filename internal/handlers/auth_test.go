package handlers_test

import (
	"testing"

	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/security"
)

// TestRegister tests the POST /api/auth/register endpoint
func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db, newTestTokens())

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var user models.User
	if err := db.Where("email = ?", "alice@example.com").First(&user).Error; err != nil {
		t.Fatalf("Expected user to be persisted: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Expected default role %q, got %q", models.RoleUser, user.Role)
	}
	if user.Password == "s3cret" {
		t.Error("Expected password to be stored hashed")
	}
	if err := security.CheckPassword(user.Password, "s3cret"); err != nil {
		t.Errorf("Expected stored hash to verify against the password: %v", err)
	}
}

// TestRegisterDuplicateEmail verifies that a taken email is rejected
func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db, newTestTokens())

	body := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	}
	resp := doRequest(t, app, "POST", "/api/auth/register", "", body)
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201 on first register, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "POST", "/api/auth/register", "", body)
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400 on duplicate register, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	decodeBody(t, resp, &result)
	if result["message"] != "email already in use" {
		t.Errorf("Unexpected message: %v", result["message"])
	}
}

// TestRegisterRejectsUnknownRole verifies the role whitelist
func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db, newTestTokens())

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "s3cret",
		"role":     "superuser",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no user rows, got %d", count)
	}
}

// TestLogin tests the POST /api/auth/login endpoint
func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokens()
	app := newTestApp(db, tokens)

	user := createTestUser(t, db, "bob@example.com", "hunter2", models.RoleUser)

	resp := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "hunter2",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &result)
	if result.Token == "" {
		t.Fatal("Expected a token in the response")
	}

	claims, err := tokens.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("Expected a parseable token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("Expected user id %q in claims, got %q", user.ID, claims.UserID)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("Expected role %q in claims, got %q", models.RoleUser, claims.Role)
	}
}

// TestLoginInvalidCredentials verifies that unknown emails and wrong
// passwords are indistinguishable to the caller
func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db, newTestTokens())

	createTestUser(t, db, "bob@example.com", "hunter2", models.RoleUser)

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "bob@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "hunter2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
				"email":    tc.email,
				"password": tc.pass,
			})
			if resp.StatusCode != 400 {
				t.Fatalf("Expected status 400, got %d", resp.StatusCode)
			}
			var result map[string]interface{}
			decodeBody(t, resp, &result)
			if result["message"] != "invalid credentials" {
				t.Errorf("Unexpected message: %v", result["message"])
			}
		})
	}
}
