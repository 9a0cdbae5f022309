package funval

import (
	"context"
	"fmt"
	"net/http"

	"github.com/funval/hs-dashboard/internal/models"
)

// SchoolPayload is the writable shape for school create/update.
type SchoolPayload struct {
	Name string `json:"name"`
}

// ListSchools fetches every school.
func (c *Client) ListSchools(ctx context.Context, auth Auth) ([]models.School, error) {
	var schools []models.School
	if err := c.getJSON(ctx, auth, "schools", &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

// GetSchool fetches one school by id.
func (c *Client) GetSchool(ctx context.Context, auth Auth, id int) (*models.School, error) {
	var school models.School
	if err := c.getJSON(ctx, auth, fmt.Sprintf("schools/%d", id), &school); err != nil {
		return nil, err
	}
	return &school, nil
}

// CreateSchool creates a school.
func (c *Client) CreateSchool(ctx context.Context, auth Auth, payload SchoolPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPost, "schools", payload, nil)
}

// UpdateSchool updates a school.
func (c *Client) UpdateSchool(ctx context.Context, auth Auth, id int, payload SchoolPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPut, fmt.Sprintf("schools/%d", id), payload, nil)
}
