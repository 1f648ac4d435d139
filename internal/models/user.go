package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user account can carry. Role checks are exact matches,
// admin does not implicitly satisfy user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The wishlist is a plain
// membership join against games, keyed by the internal game id.
type User struct {
	ID        string  `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Email     string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string  `gorm:"size:255;not null" json:"-"`
	Role      string  `gorm:"size:16;not null;default:user" json:"role"`
	PhotoURL  string  `gorm:"size:512" json:"photoUrl"`
	Wishlist  []*Game `gorm:"many2many:user_wishlist" json:"wishlist,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID primary key and the default role.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
