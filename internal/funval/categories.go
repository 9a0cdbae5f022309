package funval

import (
	"context"
	"fmt"
	"net/http"

	"github.com/funval/hs-dashboard/internal/models"
)

// CategoryPayload is the writable shape for category create/update.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context, auth Auth) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, auth, "categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches one category by id.
func (c *Client) GetCategory(ctx context.Context, auth Auth, id int) (*models.Category, error) {
	var category models.Category
	if err := c.getJSON(ctx, auth, fmt.Sprintf("categories/%d", id), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, auth Auth, payload CategoryPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPost, "categories", payload, nil)
}

// UpdateCategory updates a category.
func (c *Client) UpdateCategory(ctx context.Context, auth Auth, id int, payload CategoryPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPut, fmt.Sprintf("categories/%d", id), payload, nil)
}
