package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mfreed/larder/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Larder/1.0"
)

// Client implements domain.LibraryRepository and domain.GoalsRepository
// against the nutrition API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new nutrition API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetToken updates the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// doRequest performs an authenticated HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return nil, domain.ErrServerUnreachable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return respBody, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	default:
		c.logger.Error("api request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// FetchSavedFoods returns the owner's saved foods
func (c *Client) FetchSavedFoods(ctx context.Context, ownerID string, limit int) ([]*domain.SavedFood, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/v1/users/%s/foods", url.PathEscape(ownerID))
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var resp foodsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("failed to parse foods response", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapFoods(resp.Foods, ownerID), nil
}

// FetchRecipes returns the owner's recipes. The order hint only shapes
// the wire order; callers re-sort locally.
func (c *Client) FetchRecipes(ctx context.Context, ownerID string, limit int, order domain.RecipeOrder) ([]*domain.Recipe, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if order != "" {
		query.Set("order", string(order))
	}

	path := fmt.Sprintf("/v1/users/%s/recipes", url.PathEscape(ownerID))
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var resp recipesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("failed to parse recipes response", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapRecipes(resp.Recipes, ownerID), nil
}

// DeleteSavedFood removes a saved food from the owner's library
func (c *Client) DeleteSavedFood(ctx context.Context, ownerID, id string) error {
	path := fmt.Sprintf("/v1/users/%s/foods/%s", url.PathEscape(ownerID), url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// DeleteRecipe removes a recipe from the owner's library
func (c *Client) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	path := fmt.Sprintf("/v1/users/%s/recipes/%s", url.PathEscape(ownerID), url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// FetchGoals returns the owner's nutrition targets
func (c *Client) FetchGoals(ctx context.Context, ownerID string) (*domain.NutritionGoals, error) {
	path := fmt.Sprintf("/v1/users/%s/goals", url.PathEscape(ownerID))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto goalsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error("failed to parse goals response", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapGoals(dto, ownerID), nil
}

// UpdateGoals replaces the owner's nutrition targets
func (c *Client) UpdateGoals(ctx context.Context, ownerID string, goals domain.NutritionGoals) error {
	path := fmt.Sprintf("/v1/users/%s/goals", url.PathEscape(ownerID))
	_, err := c.doRequest(ctx, http.MethodPut, path, nil, goalsToDTO(goals))
	return err
}
