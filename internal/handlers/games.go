package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/types"
	"github.com/playvault/playvault/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameHandler handles catalog routes.
type GameHandler struct {
	DB *gorm.DB
}

// GameInput is the admin create payload.
type GameInput struct {
	AppID               types.FlexUint64       `json:"appid"`
	Name                string                 `json:"name"`
	Type                string                 `json:"type"`
	RequiredAge         int                    `json:"required_age"`
	IsFree              bool                   `json:"is_free"`
	Price               float64                `json:"price"`
	ShortDescription    string                 `json:"short_description"`
	DetailedDescription string                 `json:"detailed_description"`
	AboutTheGame        string                 `json:"about_the_game"`
	HeaderImage         string                 `json:"header_image"`
	CapsuleImage        string                 `json:"capsule_image"`
	Website             string                 `json:"website"`
	Background          string                 `json:"background"`
	Platforms           models.Platforms       `json:"platforms"`
	Genres              []models.GenreEntry    `json:"genres"`
	Developers          types.FlexList[string] `json:"developers"`
	Publishers          types.FlexList[string] `json:"publishers"`
	Screenshots         json.RawMessage        `json:"screenshots"`
	PriceOverview       json.RawMessage        `json:"price_overview"`
	Metacritic          json.RawMessage        `json:"metacritic"`
	ReleaseDate         json.RawMessage        `json:"release_date"`
}

// GameUpdate is the admin partial-update payload. Only provided fields
// are merged into the stored record.
type GameUpdate struct {
	Name                *string                `json:"name"`
	Type                *string                `json:"type"`
	RequiredAge         *int                   `json:"required_age"`
	IsFree              *bool                  `json:"is_free"`
	Price               *float64               `json:"price"`
	ShortDescription    *string                `json:"short_description"`
	DetailedDescription *string                `json:"detailed_description"`
	AboutTheGame        *string                `json:"about_the_game"`
	HeaderImage         *string                `json:"header_image"`
	CapsuleImage        *string                `json:"capsule_image"`
	Website             *string                `json:"website"`
	Background          *string                `json:"background"`
	Platforms           *models.Platforms      `json:"platforms"`
	Genres              []models.GenreEntry    `json:"genres"`
	Developers          types.FlexList[string] `json:"developers"`
	Publishers          types.FlexList[string] `json:"publishers"`
	Screenshots         json.RawMessage        `json:"screenshots"`
	PriceOverview       json.RawMessage        `json:"price_overview"`
	Metacritic          json.RawMessage        `json:"metacritic"`
	ReleaseDate         json.RawMessage        `json:"release_date"`
}

// List handles GET /api/games
// @Summary List catalog entries
// @Description List games with optional conjunctive filters. Unparseable numeric filters are ignored.
// @Tags Games
// @Produce json
// @Param genre query string false "Exact genre description"
// @Param isFree query bool false "Free-to-play only"
// @Param minAge query int false "Minimum required age"
// @Param platform query string false "windows, mac or linux"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {array} models.Game
// @Router /games [get]
func (h *GameHandler) List(c *fiber.Ctx) error {
	filters := services.GameFilters{
		Genre:    c.Query("genre"),
		IsFree:   queryBool(c, "isFree"),
		MinAge:   queryInt(c, "minAge"),
		Platform: c.Query("platform"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
	}

	games, err := services.ListGames(h.DB, filters)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(games)
}

// Featured handles GET /api/games/featured
// @Summary Featured games
// @Description A random sample of three entries with a header image, for the carousel.
// @Tags Games
// @Produce json
// @Success 200 {array} models.FeaturedGame
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /games/featured [get]
func (h *GameHandler) Featured(c *fiber.Ctx) error {
	featured, err := services.FeaturedGames(h.DB)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "no games found for the carousel")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(featured)
}

// Detail handles GET /api/games/:appid
// @Summary Get a game
// @Tags Games
// @Produce json
// @Param appid path int true "External numeric id"
// @Success 200 {object} models.Game
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /games/{appid} [get]
func (h *GameHandler) Detail(c *fiber.Ctx) error {
	appID, ok := parseIDParam(c, "appid")
	if !ok {
		return utils.ErrorResponse(c, "appid must be a valid number", fiber.StatusBadRequest, "games.validation.appid")
	}

	game, err := services.GetGameByAppID(h.DB, appID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "game not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(game)
}

// Create handles POST /api/games (admin)
// @Summary Create a game
// @Tags Games
// @Accept json
// @Produce json
// @Param body body GameInput true "Catalog entry"
// @Success 201 {object} models.Game
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /games [post]
func (h *GameHandler) Create(c *fiber.Ctx) error {
	var input GameInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "games.validation.input")
	}
	if input.AppID.Uint64() == 0 || input.Name == "" {
		return utils.ErrorResponse(c, "appid and name are required", fiber.StatusBadRequest, "games.validation.input")
	}

	game, err := gameFromInput(&input)
	if err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "games.validation.input")
	}

	if err := services.CreateGame(h.DB, game); err != nil {
		if errors.Is(err, services.ErrDuplicateApp) {
			return utils.ErrorResponse(c, "a game with this appid already exists", fiber.StatusBadRequest, "games.create.duplicate")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// Update handles PUT /api/games/:appid (admin)
// @Summary Update a game
// @Description Partial merge of the provided fields.
// @Tags Games
// @Accept json
// @Produce json
// @Param appid path int true "External numeric id"
// @Param body body GameUpdate true "Fields to merge"
// @Success 200 {object} models.Game
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /games/{appid} [put]
func (h *GameHandler) Update(c *fiber.Ctx) error {
	appID, ok := parseIDParam(c, "appid")
	if !ok {
		return utils.ErrorResponse(c, "appid must be a valid number", fiber.StatusBadRequest, "games.validation.appid")
	}

	var input GameUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "games.validation.input")
	}

	updates, err := updatesFromInput(&input)
	if err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "games.validation.input")
	}

	game, err := services.UpdateGame(h.DB, appID, updates)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "game not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(game)
}

// Delete handles DELETE /api/games/:appid (admin)
// @Summary Delete a game
// @Tags Games
// @Produce json
// @Param appid path int true "External numeric id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /games/{appid} [delete]
func (h *GameHandler) Delete(c *fiber.Ctx) error {
	appID, ok := parseIDParam(c, "appid")
	if !ok {
		return utils.ErrorResponse(c, "appid must be a valid number", fiber.StatusBadRequest, "games.validation.appid")
	}

	if err := services.DeleteGame(h.DB, appID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "game not found")
		}
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "game deleted successfully")
}

// gameFromInput converts a create payload into the stored model.
func gameFromInput(input *GameInput) (*models.Game, error) {
	game := &models.Game{
		AppID:               uint(input.AppID.Uint64()),
		Name:                input.Name,
		Type:                input.Type,
		RequiredAge:         input.RequiredAge,
		IsFree:              input.IsFree,
		Price:               input.Price,
		ShortDescription:    input.ShortDescription,
		DetailedDescription: input.DetailedDescription,
		AboutTheGame:        input.AboutTheGame,
		HeaderImage:         input.HeaderImage,
		CapsuleImage:        input.CapsuleImage,
		Website:             input.Website,
		Background:          input.Background,
		Platforms:           input.Platforms,
	}

	var err error
	if len(input.Genres) > 0 {
		if game.Genres, err = json.Marshal(input.Genres); err != nil {
			return nil, err
		}
	}
	if len(input.Developers) > 0 {
		if game.Developers, err = json.Marshal(input.Developers.Slice()); err != nil {
			return nil, err
		}
	}
	if len(input.Publishers) > 0 {
		if game.Publishers, err = json.Marshal(input.Publishers.Slice()); err != nil {
			return nil, err
		}
	}
	if len(input.Screenshots) > 0 {
		game.Screenshots = datatypes.JSON(input.Screenshots)
	}
	if len(input.PriceOverview) > 0 {
		game.PriceOverview = datatypes.JSON(input.PriceOverview)
	}
	if len(input.Metacritic) > 0 {
		game.Metacritic = datatypes.JSON(input.Metacritic)
	}
	if len(input.ReleaseDate) > 0 {
		game.ReleaseDate = datatypes.JSON(input.ReleaseDate)
	}
	return game, nil
}

// updatesFromInput builds the column update map from the provided
// fields only.
func updatesFromInput(input *GameUpdate) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.RequiredAge != nil {
		updates["required_age"] = *input.RequiredAge
	}
	if input.IsFree != nil {
		updates["is_free"] = *input.IsFree
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.ShortDescription != nil {
		updates["short_description"] = *input.ShortDescription
	}
	if input.DetailedDescription != nil {
		updates["detailed_description"] = *input.DetailedDescription
	}
	if input.AboutTheGame != nil {
		updates["about_the_game"] = *input.AboutTheGame
	}
	if input.HeaderImage != nil {
		updates["header_image"] = *input.HeaderImage
	}
	if input.CapsuleImage != nil {
		updates["capsule_image"] = *input.CapsuleImage
	}
	if input.Website != nil {
		updates["website"] = *input.Website
	}
	if input.Background != nil {
		updates["background"] = *input.Background
	}
	if input.Platforms != nil {
		updates["platform_windows"] = input.Platforms.Windows
		updates["platform_mac"] = input.Platforms.Mac
		updates["platform_linux"] = input.Platforms.Linux
	}
	if len(input.Genres) > 0 {
		encoded, err := json.Marshal(input.Genres)
		if err != nil {
			return nil, err
		}
		updates["genres"] = encoded
	}
	if len(input.Developers) > 0 {
		encoded, err := json.Marshal(input.Developers.Slice())
		if err != nil {
			return nil, err
		}
		updates["developers"] = encoded
	}
	if len(input.Publishers) > 0 {
		encoded, err := json.Marshal(input.Publishers.Slice())
		if err != nil {
			return nil, err
		}
		updates["publishers"] = encoded
	}
	if len(input.Screenshots) > 0 {
		updates["screenshots"] = datatypes.JSON(input.Screenshots)
	}
	if len(input.PriceOverview) > 0 {
		updates["price_overview"] = datatypes.JSON(input.PriceOverview)
	}
	if len(input.Metacritic) > 0 {
		updates["metacritic"] = datatypes.JSON(input.Metacritic)
	}
	if len(input.ReleaseDate) > 0 {
		updates["release_date"] = datatypes.JSON(input.ReleaseDate)
	}

	return updates, nil
}
