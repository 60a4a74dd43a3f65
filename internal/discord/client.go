package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/handler"
)

// APIError is a non-2xx response from the gacha API
type APIError struct {
	Status      int
	Message     string
	Suggestions []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// APIClient handles communication with the gacha HTTP API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	maxRetries int
	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: apiRequestTimeout,
		},
		APIKey:     apiKey,
		maxRetries: apiMaxRetries,
		retryDelay: apiRetryDelay,
	}
}

// doRequest performs an HTTP request, retrying transport failures and 5xx responses
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}
		if resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		lastErr = decodeAPIError(resp)
		resp.Body.Close()
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call sends body and decodes a 2xx response into out (when non-nil)
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp handler.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, apiErrorBodyLimit))
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		apiErr.Suggestions = errResp.Suggestions
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func userQuery(path, userID string) string {
	return path + "?" + url.Values{handler.ParamUserID: {userID}}.Encode()
}

func itemPath(name string, suffix string) string {
	return "/api/v1/admin/items/" + url.PathEscape(name) + suffix
}

// Pull draws one item for the user
func (c *APIClient) Pull(userID, username string) (*gacha.PullResult, error) {
	var res gacha.PullResult
	err := c.call(http.MethodPost, "/api/v1/pull", handler.UserRequest{UserID: userID, Username: username}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Inventory lists the user's items
func (c *APIClient) Inventory(userID string) ([]domain.InventoryEntry, error) {
	var res handler.InventoryResponse
	if err := c.call(http.MethodGet, userQuery("/api/v1/inventory", userID), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Achievements lists the user's grants
func (c *APIClient) Achievements(userID string) ([]domain.Achievement, error) {
	var res handler.AchievementsResponse
	if err := c.call(http.MethodGet, userQuery("/api/v1/achievements", userID), nil, &res); err != nil {
		return nil, err
	}
	return res.Achievements, nil
}

// ClaimDaily claims the daily reward
func (c *APIClient) ClaimDaily(userID, username string) (*gacha.ClaimResult, error) {
	return c.claim("/api/v1/rewards/daily", userID, username)
}

// ClaimWeekly claims the weekly reward
func (c *APIClient) ClaimWeekly(userID, username string) (*gacha.ClaimResult, error) {
	return c.claim("/api/v1/rewards/weekly", userID, username)
}

func (c *APIClient) claim(path, userID, username string) (*gacha.ClaimResult, error) {
	var res gacha.ClaimResult
	if err := c.call(http.MethodPost, path, handler.UserRequest{UserID: userID, Username: username}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Stats returns the user's summary
func (c *APIClient) Stats(userID string) (*domain.UserStats, error) {
	var res domain.UserStats
	if err := c.call(http.MethodGet, userQuery("/api/v1/stats", userID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Leaderboard returns the top users by pulls
func (c *APIClient) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	path := "/api/v1/leaderboard?" + url.Values{handler.ParamLimit: {strconv.Itoa(limit)}}.Encode()
	var res handler.LeaderboardResponse
	if err := c.call(http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Entries, nil
}

// GetItem looks up one catalog item; a 404 APIError carries suggestions
func (c *APIClient) GetItem(name string) (*domain.Item, error) {
	var res domain.Item
	if err := c.call(http.MethodGet, "/api/v1/items/"+url.PathEscape(name), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchItems returns fuzzy name matches, best first
func (c *APIClient) SearchItems(query string) ([]string, error) {
	path := "/api/v1/items/search?" + url.Values{handler.ParamQuery: {query}}.Encode()
	var res handler.SearchResponse
	if err := c.call(http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// ListItems returns the whole catalog
func (c *APIClient) ListItems() ([]domain.Item, error) {
	var res handler.ItemsResponse
	if err := c.call(http.MethodGet, "/api/v1/items", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// AddItem creates a catalog item
func (c *APIClient) AddItem(name, rarity string) (*domain.Item, error) {
	var res domain.Item
	if err := c.call(http.MethodPost, "/api/v1/admin/items", handler.AddItemRequest{Name: name, Rarity: rarity}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveItem deletes a catalog item
func (c *APIClient) RemoveItem(name string) error {
	return c.call(http.MethodDelete, itemPath(name, ""), nil, nil)
}

// SetRarity changes an item's rarity
func (c *APIClient) SetRarity(name, rarity string) error {
	return c.call(http.MethodPut, itemPath(name, "/rarity"), handler.SetRarityRequest{Rarity: rarity}, nil)
}

// SetDescription changes an item's description
func (c *APIClient) SetDescription(name, description string) error {
	return c.call(http.MethodPut, itemPath(name, "/description"), handler.SetDescriptionRequest{Description: description}, nil)
}

// SetImage changes an item's image reference
func (c *APIClient) SetImage(name, image string) error {
	return c.call(http.MethodPut, itemPath(name, "/image"), handler.SetImageRequest{Image: image}, nil)
}

// GiveItem grants copies of an item to a user
func (c *APIClient) GiveItem(userID, itemName string, amount int64) (*gacha.GiveResult, error) {
	var res gacha.GiveResult
	req := handler.GiveItemRequest{UserID: userID, ItemName: itemName, Amount: amount}
	if err := c.call(http.MethodPost, "/api/v1/admin/give", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetPulls overwrites a user's pull counter
func (c *APIClient) SetPulls(userID string, pulls int64) (*handler.SetPullsResponse, error) {
	var res handler.SetPullsResponse
	if err := c.call(http.MethodPost, "/api/v1/admin/pulls", handler.SetPullsRequest{UserID: userID, Pulls: pulls}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResetAll wipes every user's progress but keeps achievements
func (c *APIClient) ResetAll() error {
	return c.call(http.MethodPost, "/api/v1/admin/reset", handler.ResetRequest{Confirm: handler.ResetConfirmationKey}, nil)
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + "/healthz")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
