package services

import (
	"errors"

	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/security"
	"gorm.io/gorm"
)

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegisterUser creates a new account with a hashed password. Duplicate
// emails are rejected with ErrEmailTaken, both from the pre-check and
// from the unique index when two registrations race.
func RegisterUser(db *gorm.DB, input RegisterInput) (*models.User, error) {
	switch input.Role {
	case "", models.RoleUser, models.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Role:     input.Role,
	}
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// AuthenticateUser verifies email and password. Unknown email and wrong
// password both surface as ErrInvalidCredentials so callers cannot tell
// which one failed.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := security.CheckPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
