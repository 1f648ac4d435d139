package services

import (
	"errors"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// GetWishlist returns the user's wishlist, populated.
func GetWishlist(db *gorm.DB, userID string) ([]*models.Game, error) {
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	var games []*models.Game
	if err := db.Model(user).Association("Wishlist").Find(&games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// AddToWishlist appends a game (by internal id) to the user's wishlist.
// A game already present is rejected.
func AddToWishlist(db *gorm.DB, userID string, gameID uint) error {
	user, err := findUser(db, userID)
	if err != nil {
		return err
	}
	game, err := GetGameByID(db, gameID)
	if err != nil {
		return err
	}

	present, err := inWishlist(db, user, gameID)
	if err != nil {
		return err
	}
	if present {
		return ErrAlreadyInWishlist
	}

	return db.Model(user).Association("Wishlist").Append(game)
}

// RemoveFromWishlist removes a game from the user's wishlist. Removing a
// game that is not present is an explicit rejection, not a no-op.
func RemoveFromWishlist(db *gorm.DB, userID string, gameID uint) error {
	user, err := findUser(db, userID)
	if err != nil {
		return err
	}

	present, err := inWishlist(db, user, gameID)
	if err != nil {
		return err
	}
	if !present {
		return ErrNotInWishlist
	}

	return db.Model(user).Association("Wishlist").Delete(&models.Game{ID: gameID})
}

// inWishlist reports whether the game is already a wishlist member.
func inWishlist(db *gorm.DB, user *models.User, gameID uint) (bool, error) {
	var games []*models.Game
	if err := db.Model(user).Association("Wishlist").Find(&games, "id = ?", gameID); err != nil {
		return false, err
	}
	return len(games) > 0, nil
}

// findUser loads a user by id.
func findUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
