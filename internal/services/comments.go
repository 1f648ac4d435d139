package services

import (
	"errors"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// AddComment creates a comment by userID on the game with the given
// appid. A second comment by the same user on the same game is rejected
// with ErrAlreadyCommented, backed by the composite unique index.
func AddComment(db *gorm.DB, userID string, gameAppID uint, content string) (*models.Comment, error) {
	var count int64
	if err := db.Model(&models.Game{}).Where("app_id = ?", gameAppID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		UserID:    userID,
		GameAppID: gameAppID,
		Content:   content,
	}
	if err := db.Create(comment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAlreadyCommented
		}
		return nil, err
	}
	return comment, nil
}

// ListComments returns all comments for a game, newest first, each with
// the commenting user's display name and photo.
func ListComments(db *gorm.DB, gameAppID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Where("game_app_id = ?", gameAppID).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "photo_url")
		}).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment replaces the content of a comment. Only the authoring
// user may edit; anyone else gets ErrNotOwner.
func UpdateComment(db *gorm.DB, commentID uint, userID, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotOwner
	}

	comment.Content = content
	if err := db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment. Only the authoring user may delete.
func DeleteComment(db *gorm.DB, commentID uint, userID string) error {
	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	return db.Delete(&comment).Error
}
