// Package client is a typed HTTP client for the PlayVault API. It is the
// programmatic counterpart of the store frontend's data layer and covers
// every public route the server exposes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// The response types below mirror the server's JSON shapes with plain
// exported structs, so importers outside this module can name every
// value the client returns. Nested upstream catalog structures stay
// raw JSON, the way the server stores them.

// Platforms is the platform availability of a catalog entry.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Game is a catalog entry as served by the games routes.
type Game struct {
	ID                  uint            `json:"id"`
	AppID               uint            `json:"appid"`
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	RequiredAge         int             `json:"required_age"`
	IsFree              bool            `json:"is_free"`
	Price               float64         `json:"price"`
	ShortDescription    string          `json:"short_description"`
	DetailedDescription string          `json:"detailed_description"`
	AboutTheGame        string          `json:"about_the_game"`
	HeaderImage         string          `json:"header_image"`
	CapsuleImage        string          `json:"capsule_image"`
	Website             string          `json:"website"`
	Background          string          `json:"background"`
	Platforms           Platforms       `json:"platforms"`
	Genres              json.RawMessage `json:"genres,omitempty"`
	Developers          json.RawMessage `json:"developers,omitempty"`
	Publishers          json.RawMessage `json:"publishers,omitempty"`
	Screenshots         json.RawMessage `json:"screenshots,omitempty"`
	PriceOverview       json.RawMessage `json:"price_overview,omitempty"`
	Metacritic          json.RawMessage `json:"metacritic,omitempty"`
	ReleaseDate         json.RawMessage `json:"release_date,omitempty"`
}

// FeaturedGame is the carousel projection of a catalog entry.
type FeaturedGame struct {
	Name        string `json:"name"`
	HeaderImage string `json:"header_image"`
}

// CommentAuthor is the public slice of the commenting user's account.
type CommentAuthor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// Comment is a user review of a catalog entry.
type Comment struct {
	ID        uint           `json:"id"`
	UserID    string         `json:"userId"`
	GameAppID uint           `json:"game"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	User      *CommentAuthor `json:"user,omitempty"`
}

// CartItem is one row of the caller's cart.
type CartItem struct {
	ID       uint      `json:"id"`
	UserID   string    `json:"userId"`
	GameID   uint      `json:"gameId"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
	Game     *Game     `json:"game,omitempty"`
}

// Library is the set of games the caller owns.
type Library struct {
	ID     uint    `json:"id"`
	UserID string  `json:"userId"`
	Games  []*Game `json:"games"`
}

// Health is the server's health check payload.
type Health struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// APIError is the server's error envelope, returned for any non-2xx reply.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("playvault: %s (status %d)", e.Message, e.Status)
}

// Client talks to a PlayVault server. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets a bearer token up front, for callers that persist tokens
// between sessions instead of calling Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the server at baseURL (scheme and host, no
// trailing /api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", in, nil)
}

// Login exchanges credentials for a token and attaches it to all
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Profile is the authenticated user's identity.
type Profile struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Role    string `json:"role"`
}

// GetProfile returns the caller's identity.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GameFilters narrows ListGames. Zero-valued fields are omitted.
type GameFilters struct {
	Genre    string
	IsFree   *bool
	MinAge   *int
	Platform string
	MinPrice *float64
	MaxPrice *float64
}

func (f GameFilters) encode() string {
	q := url.Values{}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.IsFree != nil {
		q.Set("isFree", strconv.FormatBool(*f.IsFree))
	}
	if f.MinAge != nil {
		q.Set("minAge", strconv.Itoa(*f.MinAge))
	}
	if f.Platform != "" {
		q.Set("platform", f.Platform)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListGames returns catalog entries matching the filters.
func (c *Client) ListGames(ctx context.Context, filters GameFilters) ([]Game, error) {
	var out []Game
	if err := c.do(ctx, http.MethodGet, "/games"+filters.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FeaturedGames returns the random carousel sample.
func (c *Client) FeaturedGames(ctx context.Context) ([]FeaturedGame, error) {
	var out []FeaturedGame
	if err := c.do(ctx, http.MethodGet, "/games/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGame returns a single game by its external numeric id.
func (c *Client) GetGame(ctx context.Context, appID uint) (*Game, error) {
	var out Game
	path := "/games/" + strconv.FormatUint(uint64(appID), 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddComment posts a comment on a game. One comment per user per game.
func (c *Client) AddComment(ctx context.Context, appID uint, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	path := fmt.Sprintf("/games/%d/comments", appID)
	var out Comment
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns a game's comments, newest first.
func (c *Client) ListComments(ctx context.Context, appID uint) ([]Comment, error) {
	var out []Comment
	path := fmt.Sprintf("/games/%d/comments", appID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateComment replaces the caller's own comment text.
func (c *Client) UpdateComment(ctx context.Context, commentID uint, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	path := fmt.Sprintf("/comments/%d", commentID)
	var out Comment
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes the caller's own comment.
func (c *Client) DeleteComment(ctx context.Context, commentID uint) error {
	path := fmt.Sprintf("/comments/%d", commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ValidateCoupon checks a code and returns its discount percentage.
func (c *Client) ValidateCoupon(ctx context.Context, code string) (int, error) {
	body := map[string]string{"code": code}
	var out struct {
		Discount int `json:"discount"`
	}
	if err := c.do(ctx, http.MethodPost, "/cupons/validate", body, &out); err != nil {
		return 0, err
	}
	return out.Discount, nil
}

type cartItemResponse struct {
	Message  string          `json:"message"`
	CartItem CartItem `json:"cartItem"`
}

// AddToCart puts a game in the cart; adding the same game again
// increments the row's quantity.
func (c *Client) AddToCart(ctx context.Context, gameID uint) (*CartItem, error) {
	body := map[string]uint{"gameId": gameID}
	var out cartItemResponse
	if err := c.do(ctx, http.MethodPost, "/cart", body, &out); err != nil {
		return nil, err
	}
	return &out.CartItem, nil
}

// GetCart returns the caller's cart contents.
func (c *Client) GetCart(ctx context.Context) ([]CartItem, error) {
	var out struct {
		CartItems []CartItem `json:"cartItems"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.CartItems, nil
}

// SetCartQuantity changes a cart row's quantity. The quantity must be
// at least 1; use RemoveFromCart to drop a row.
func (c *Client) SetCartQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error) {
	body := map[string]int{"quantity": quantity}
	path := fmt.Sprintf("/cart/%d", itemID)
	var out cartItemResponse
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out.CartItem, nil
}

// RemoveFromCart deletes a cart row.
func (c *Client) RemoveFromCart(ctx context.Context, itemID uint) error {
	path := fmt.Sprintf("/cart/%d", itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Checkout moves every distinct game in the cart into the library and
// empties the cart.
func (c *Client) Checkout(ctx context.Context) (*Library, error) {
	var out struct {
		Message string         `json:"message"`
		Library Library `json:"library"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart/checkout", nil, &out); err != nil {
		return nil, err
	}
	return &out.Library, nil
}

// GetLibrary returns the caller's owned games. Users who never bought
// anything get a not-found error.
func (c *Client) GetLibrary(ctx context.Context) (*Library, error) {
	var out struct {
		Library Library `json:"library"`
	}
	if err := c.do(ctx, http.MethodGet, "/library", nil, &out); err != nil {
		return nil, err
	}
	return &out.Library, nil
}

// GetWishlist returns the caller's saved-for-later games.
func (c *Client) GetWishlist(ctx context.Context) ([]Game, error) {
	var out []Game
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddToWishlist saves a game for later by its internal id.
func (c *Client) AddToWishlist(ctx context.Context, gameID uint) error {
	path := fmt.Sprintf("/wishlist/%d", gameID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RemoveFromWishlist drops a game from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, gameID uint) error {
	path := fmt.Sprintf("/wishlist/%d", gameID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Health reports the server's health check result.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
