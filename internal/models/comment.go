package models

import "time"

// Comment is a user review of a catalog entry, referenced by the
// external appid. One comment per (user, game) pair, enforced by the
// composite unique index.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_user_game_comment,unique" json:"userId"`
	GameAppID uint      `gorm:"not null;index:idx_user_game_comment,unique" json:"game"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
