package funval

import (
	"context"

	"github.com/funval/hs-dashboard/internal/models"
)

// ListRoles fetches the role catalogue.
func (c *Client) ListRoles(ctx context.Context, auth Auth) ([]models.Role, error) {
	var roles []models.Role
	if err := c.getJSON(ctx, auth, "roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
