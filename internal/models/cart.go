package models

import "time"

// CartItem is one row of a user's cart. The composite unique index keeps
// concurrent adds for the same (user, game) from producing two rows; the
// add path increments quantity instead.
type CartItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:char(36);not null;index:idx_user_game_cart,unique" json:"userId"`
	GameID   uint      `gorm:"not null;index:idx_user_game_cart,unique" json:"gameId"`
	Quantity int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"addedAt"`

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

// TableName overrides the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}
