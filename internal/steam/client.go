// Package steam fetches catalog data from the external game
// distribution API: the full app list, then per-app details.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/types"
	"gorm.io/datatypes"
)

// ErrAppNotFound is returned when the details endpoint reports no data
// for an appid (success: false).
var ErrAppNotFound = errors.New("steam: app not found")

// Client talks to the external catalog API.
type Client struct {
	httpClient *http.Client
	listURL    string
	detailsURL string
}

// NewClient creates a Client for the given endpoint URLs.
func NewClient(listURL, detailsURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		listURL:    listURL,
		detailsURL: detailsURL,
	}
}

// App is one entry of the upstream app list.
type App struct {
	AppID uint   `json:"appid"`
	Name  string `json:"name"`
}

// AppDetails is the subset of the per-app details payload the catalog
// stores. Numeric fields that the upstream serves inconsistently as
// strings use the lenient decoders.
type AppDetails struct {
	AppID            uint             `json:"steam_appid"`
	Name             string           `json:"name"`
	Type             string           `json:"type"`
	RequiredAge      types.FlexUint64 `json:"required_age"`
	IsFree           bool             `json:"is_free"`
	ShortDescription string           `json:"short_description"`
	DetailedDesc     string           `json:"detailed_description"`
	AboutTheGame     string           `json:"about_the_game"`
	HeaderImage      string           `json:"header_image"`
	CapsuleImage     string           `json:"capsule_image"`
	Website          string           `json:"website"`
	Background       string           `json:"background"`
	Platforms        models.Platforms `json:"platforms"`
	Genres           json.RawMessage  `json:"genres"`
	Developers       json.RawMessage  `json:"developers"`
	Publishers       json.RawMessage  `json:"publishers"`
	Screenshots      json.RawMessage  `json:"screenshots"`
	PriceOverview    json.RawMessage  `json:"price_overview"`
	Metacritic       json.RawMessage  `json:"metacritic"`
	ReleaseDate      json.RawMessage  `json:"release_date"`
}

// FetchAppList retrieves the upstream app list, skipping entries with
// an empty name.
func (c *Client) FetchAppList(ctx context.Context) ([]App, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("steam: app list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam: app list returned status %d", resp.StatusCode)
	}

	var payload struct {
		AppList struct {
			Apps []App `json:"apps"`
		} `json:"applist"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("steam: decoding app list: %w", err)
	}

	apps := make([]App, 0, len(payload.AppList.Apps))
	for _, app := range payload.AppList.Apps {
		if app.Name == "" {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// FetchAppDetails retrieves details for one appid. The upstream wraps
// the payload in an envelope keyed by the appid with a success flag;
// success=false surfaces as ErrAppNotFound.
func (c *Client) FetchAppDetails(ctx context.Context, appID uint) (*AppDetails, error) {
	url := fmt.Sprintf("%s?appids=%d", c.detailsURL, appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("steam: details request for %d failed: %w", appID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam: details for %d returned status %d", appID, resp.StatusCode)
	}

	var envelope map[string]struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("steam: decoding details for %d: %w", appID, err)
	}

	entry, ok := envelope[fmt.Sprintf("%d", appID)]
	if !ok || !entry.Success {
		return nil, ErrAppNotFound
	}

	var details AppDetails
	if err := json.Unmarshal(entry.Data, &details); err != nil {
		return nil, fmt.Errorf("steam: decoding details payload for %d: %w", appID, err)
	}
	if details.AppID == 0 {
		details.AppID = appID
	}
	return &details, nil
}

// ToGame converts a details payload into the stored catalog model.
func (d *AppDetails) ToGame() *models.Game {
	game := &models.Game{
		AppID:               d.AppID,
		Name:                d.Name,
		Type:                d.Type,
		RequiredAge:         int(d.RequiredAge.Uint64()),
		IsFree:              d.IsFree,
		Price:               priceFromOverview(d.PriceOverview),
		ShortDescription:    d.ShortDescription,
		DetailedDescription: d.DetailedDesc,
		AboutTheGame:        d.AboutTheGame,
		HeaderImage:         d.HeaderImage,
		CapsuleImage:        d.CapsuleImage,
		Website:             d.Website,
		Background:          d.Background,
		Platforms:           d.Platforms,
		Genres:              datatypes.JSON(d.Genres),
		Developers:          datatypes.JSON(d.Developers),
		Publishers:          datatypes.JSON(d.Publishers),
		Screenshots:         datatypes.JSON(d.Screenshots),
		PriceOverview:       datatypes.JSON(d.PriceOverview),
		Metacritic:          datatypes.JSON(d.Metacritic),
		ReleaseDate:         datatypes.JSON(d.ReleaseDate),
	}
	return game
}

// priceFromOverview extracts the final price from the upstream price
// overview, which quotes it in cents.
func priceFromOverview(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var overview struct {
		Final int64 `json:"final"`
	}
	if err := json.Unmarshal(raw, &overview); err != nil {
		return 0
	}
	return float64(overview.Final) / 100
}
