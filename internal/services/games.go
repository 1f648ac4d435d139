package services

import (
	"errors"
	"fmt"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// GameFilters are the optional catalog list filters, combined
// conjunctively. Nil/empty fields are omitted from the query.
type GameFilters struct {
	Genre    string
	IsFree   *bool
	MinAge   *int
	Platform string
	MinPrice *float64
	MaxPrice *float64
}

// featuredSampleSize is the carousel sample size.
const featuredSampleSize = 3

// ListGames returns catalog entries matching the given filters.
func ListGames(db *gorm.DB, filters GameFilters) ([]models.Game, error) {
	query := db.Model(&models.Game{})

	if filters.Genre != "" {
		// Genres are stored as the upstream JSON list, so an exact
		// description match reduces to a substring match on the encoded
		// pair. The wildcard after the colon tolerates the space MySQL
		// inserts when rendering its native JSON type as text.
		pattern := `%"description":%` + fmt.Sprintf("%q", filters.Genre) + `%`
		query = query.Where(genresTextExpr(db)+" LIKE ?", pattern)
	}
	if filters.IsFree != nil {
		query = query.Where("is_free = ?", *filters.IsFree)
	}
	if filters.MinAge != nil {
		query = query.Where("required_age >= ?", *filters.MinAge)
	}
	switch filters.Platform {
	case "windows":
		query = query.Where("platform_windows = ?", true)
	case "mac":
		query = query.Where("platform_mac = ?", true)
	case "linux":
		query = query.Where("platform_linux = ?", true)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// FeaturedGames returns a random sample of entries that have a header
// image, projecting only the display fields.
func FeaturedGames(db *gorm.DB) ([]models.FeaturedGame, error) {
	var featured []models.FeaturedGame
	err := db.Model(&models.Game{}).
		Select("name", "header_image").
		Where("header_image <> ''").
		Order(randomExpr(db)).
		Limit(featuredSampleSize).
		Find(&featured).Error
	if err != nil {
		return nil, err
	}
	if len(featured) == 0 {
		return nil, ErrNotFound
	}
	return featured, nil
}

// genresTextExpr returns the genres column as a LIKE-able text
// expression. The JSON column type maps to JSONB on postgres and JSON
// on mysql, neither of which accepts a bare LIKE.
func genresTextExpr(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "genres::text"
	case "mysql":
		return "CAST(genres AS CHAR)"
	case "sqlserver":
		return "CAST(genres AS NVARCHAR(MAX))"
	default: // sqlite stores JSON as plain text
		return "genres"
	}
}

// randomExpr returns the dialect's random ordering expression.
func randomExpr(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "RAND()"
	case "sqlserver":
		return "NEWID()"
	default: // postgres, sqlite
		return "RANDOM()"
	}
}

// GetGameByAppID looks up a catalog entry by its external numeric id.
func GetGameByAppID(db *gorm.DB, appID uint) (*models.Game, error) {
	var game models.Game
	if err := db.Where("app_id = ?", appID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetGameByID looks up a catalog entry by its internal id.
func GetGameByID(db *gorm.DB, id uint) (*models.Game, error) {
	var game models.Game
	if err := db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// CreateGame inserts a new catalog entry.
func CreateGame(db *gorm.DB, game *models.Game) error {
	if err := db.Create(game).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateApp
		}
		return err
	}
	return nil
}

// UpdateGame applies a partial merge of the provided fields to the entry
// with the given appid and returns the updated record.
func UpdateGame(db *gorm.DB, appID uint, updates map[string]interface{}) (*models.Game, error) {
	game, err := GetGameByAppID(db, appID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return game, nil
	}
	if err := db.Model(game).Updates(updates).Error; err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteGame hard-deletes the entry with the given appid.
func DeleteGame(db *gorm.DB, appID uint) error {
	result := db.Where("app_id = ?", appID).Delete(&models.Game{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertGame inserts or updates a catalog entry keyed by appid. Used by
// the sync job.
func UpsertGame(db *gorm.DB, game *models.Game) error {
	var existing models.Game
	err := db.Where("app_id = ?", game.AppID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(game).Error
	}
	if err != nil {
		return err
	}
	game.ID = existing.ID
	game.CreatedAt = existing.CreatedAt
	return db.Model(&existing).Select("*").Omit("id", "created_at").Updates(game).Error
}
