package services

import (
	"errors"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// AddCartItem puts the game with the given internal id into the user's
// cart. An existing row for (user, game) has its quantity incremented by
// one instead of inserting a second row.
func AddCartItem(db *gorm.DB, userID string, gameID uint) (*models.CartItem, error) {
	if _, err := GetGameByID(db, gameID); err != nil {
		return nil, err
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity++
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, GameID: gameID, Quantity: 1}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &item, nil
}

// GetCartItems returns all cart rows for the user with game details
// populated.
func GetCartItems(db *gorm.DB, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Preload("Game").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateCartItemQuantity sets the quantity of a cart row owned by the
// user. Quantities below one are rejected.
func UpdateCartItemQuantity(db *gorm.DB, userID string, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a cart row scoped to the requesting user.
func RemoveCartItem(db *gorm.DB, userID string, itemID uint) error {
	result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Checkout moves every distinct game in the user's cart into their
// library and clears the cart. The whole sequence runs in one
// transaction so a failure can never leave the library updated with the
// cart still populated.
func Checkout(db *gorm.DB, userID string) (*models.Library, error) {
	var library models.Library

	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Preload("Game").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		if err := tx.Where("user_id = ?", userID).Preload("Games").
			FirstOrCreate(&library, models.Library{UserID: userID}).Error; err != nil {
			return err
		}

		owned := make(map[uint]bool, len(library.Games))
		for _, game := range library.Games {
			owned[game.ID] = true
		}

		for _, item := range items {
			if item.Game == nil || owned[item.GameID] {
				continue
			}
			if err := tx.Model(&library).Association("Games").Append(item.Game); err != nil {
				return err
			}
			owned[item.GameID] = true
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Where("user_id = ?", userID).Preload("Games").First(&library).Error; err != nil {
		return nil, err
	}
	return &library, nil
}
