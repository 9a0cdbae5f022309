package funval

import (
	"context"
	"net/http"

	"github.com/funval/hs-dashboard/internal/models"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// LoginRequest is the credential payload for auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what the backend answers on a successful login. Older
// deployments deliver the token only as a cookie, so Token may be empty here
// and filled from the Set-Cookie header instead.
type LoginResponse struct {
	Status  string       `json:"status,omitempty"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// ChangePasswordRequest is the payload for auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login authenticates against the backend and returns the bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.do(ctx, Auth{}, http.MethodPost, "auth/login", jsonBody(req), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		message := serverMessage(resp.Body)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, message)
	}
	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeBody(resp.Body, &out); err != nil {
		return nil, err
	}

	if out.Token == "" {
		out.Token = tokenFromCookies(resp.Cookies())
	}
	if out.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrBackend, "login succeeded but no token was issued")
	}

	return &out, nil
}

// Profile fetches the authenticated user, the authoritative source for the
// role persisted into the session.
func (c *Client) Profile(ctx context.Context, auth Auth) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, auth, "auth/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, auth Auth, req ChangePasswordRequest) error {
	return c.sendJSON(ctx, auth, http.MethodPut, "auth/change-password", req, nil)
}

// Logout invalidates the token server-side. Best effort: a failure here never
// blocks the local session teardown.
func (c *Client) Logout(ctx context.Context, auth Auth) error {
	return c.sendJSON(ctx, auth, http.MethodPost, "auth/logout", nil, nil)
}

func tokenFromCookies(cookies []*http.Cookie) string {
	for _, ck := range cookies {
		if ck.Name == "token" && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}
