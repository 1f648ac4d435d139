package models

import (
	"time"

	"gorm.io/datatypes"
)

// Platforms mirrors the platform availability flags of the upstream
// catalog payload. Embedded so each flag is a filterable column while
// the JSON shape stays nested.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Game is a catalog entry keyed by the external numeric appid.
// Nested upstream structures (genres, screenshots, price overview, ...)
// are stored verbatim as JSON columns.
type Game struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	AppID               uint           `gorm:"not null;uniqueIndex" json:"appid"`
	Name                string         `gorm:"size:512;not null" json:"name"`
	Type                string         `gorm:"size:64" json:"type"`
	RequiredAge         int            `json:"required_age"`
	IsFree              bool           `json:"is_free"`
	Price               float64        `json:"price"`
	ShortDescription    string         `gorm:"type:text" json:"short_description"`
	DetailedDescription string         `gorm:"type:text" json:"detailed_description"`
	AboutTheGame        string         `gorm:"type:text" json:"about_the_game"`
	HeaderImage         string         `gorm:"size:1024" json:"header_image"`
	CapsuleImage        string         `gorm:"size:1024" json:"capsule_image"`
	Website             string         `gorm:"size:1024" json:"website"`
	Background          string         `gorm:"size:1024" json:"background"`
	Platforms           Platforms      `gorm:"embedded;embeddedPrefix:platform_" json:"platforms"`
	Genres              datatypes.JSON `json:"genres,omitempty"`
	Developers          datatypes.JSON `json:"developers,omitempty"`
	Publishers          datatypes.JSON `json:"publishers,omitempty"`
	Screenshots         datatypes.JSON `json:"screenshots,omitempty"`
	PriceOverview       datatypes.JSON `json:"price_overview,omitempty"`
	Metacritic          datatypes.JSON `json:"metacritic,omitempty"`
	ReleaseDate         datatypes.JSON `json:"release_date,omitempty"`
	CreatedAt           time.Time      `json:"-"`
	UpdatedAt           time.Time      `json:"-"`
}

// TableName overrides the table name for Game
func (Game) TableName() string {
	return "games"
}

// GenreEntry is one element of the genres JSON list.
type GenreEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// FeaturedGame is the carousel projection of a catalog entry.
type FeaturedGame struct {
	Name        string `json:"name"`
	HeaderImage string `json:"header_image"`
}
