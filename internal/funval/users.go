package funval

import (
	"context"
	"fmt"
	"net/http"

	"github.com/funval/hs-dashboard/internal/models"
)

// UserPayload is the writable shape for user create/update.
type UserPayload struct {
	FirstName  string `json:"f_name"`
	MiddleName string `json:"m_name,omitempty"`
	LastName   string `json:"f_lastname"`
	SecondLast string `json:"s_lastname,omitempty"`
	Email      string `json:"email"`
	RoleID     int    `json:"role_id"`
	Password   string `json:"password,omitempty"`
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context, auth Auth) ([]models.User, error) {
	var users []models.User
	if err := c.getJSON(ctx, auth, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, auth Auth, id int) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, auth, fmt.Sprintf("users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, auth Auth, payload UserPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPost, "users", payload, nil)
}

// UpdateUser updates a user.
func (c *Client) UpdateUser(ctx context.Context, auth Auth, id int, payload UserPayload) error {
	return c.sendJSON(ctx, auth, http.MethodPut, fmt.Sprintf("users/%d", id), payload, nil)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, auth Auth, id int) error {
	return c.sendJSON(ctx, auth, http.MethodDelete, fmt.Sprintf("users/%d", id), nil, nil)
}
