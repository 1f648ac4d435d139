package services

import (
	"errors"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// AddToLibrary appends a game to the user's library, creating the
// library record on first use. A game already present is rejected.
func AddToLibrary(db *gorm.DB, userID string, gameID uint) (*models.Library, error) {
	game, err := GetGameByID(db, gameID)
	if err != nil {
		return nil, err
	}

	var library models.Library
	if err := db.Where("user_id = ?", userID).Preload("Games").
		FirstOrCreate(&library, models.Library{UserID: userID}).Error; err != nil {
		return nil, err
	}

	for _, owned := range library.Games {
		if owned.ID == gameID {
			return nil, ErrAlreadyInLibrary
		}
	}

	if err := db.Model(&library).Association("Games").Append(game); err != nil {
		return nil, err
	}

	library.Games = append(library.Games, game)
	return &library, nil
}

// GetLibrary returns the user's library with games populated. A user
// that never checked out or added a game has no library record and gets
// ErrNotFound.
func GetLibrary(db *gorm.DB, userID string) (*models.Library, error) {
	var library models.Library
	err := db.Where("user_id = ?", userID).Preload("Games").First(&library).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &library, nil
}

// RemoveFromLibrary removes a game membership by internal id. Both a
// missing library record and a missing membership are ErrNotFound.
func RemoveFromLibrary(db *gorm.DB, userID string, gameID uint) error {
	var library models.Library
	err := db.Where("user_id = ?", userID).Preload("Games").First(&library).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var member *models.Game
	for _, owned := range library.Games {
		if owned.ID == gameID {
			member = owned
			break
		}
	}
	if member == nil {
		return ErrNotFound
	}

	return db.Model(&library).Association("Games").Delete(member)
}
