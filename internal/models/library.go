package models

import "time"

// Library is the set of games a user owns. Created lazily by the first
// direct add or the first checkout. Membership duplicates are rejected in
// the service layer, the join table itself does not forbid them.
type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex" json:"userId"`
	Games     []*Game   `gorm:"many2many:library_games" json:"games"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name for Library
func (Library) TableName() string {
	return "libraries"
}
