package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// LoginForm is the credential form on the login screen.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ChangePasswordForm is the password form on the profile screen.
type ChangePasswordForm struct {
	OldPassword     string `form:"old_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// AuthService drives the login, profile, and password workflows against the
// backend. It never touches the session store; the handler owns that.
type AuthService struct {
	client    *funval.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(client *funval.Client, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{client: client, validator: validate, logger: logger}
}

// Login authenticates and resolves the canonical role from the profile
// endpoint, which is authoritative even when the login response carries a
// user. Returns the token and role to persist into the session.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (token, role string, fieldErrs FieldErrors, err error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return "", "", fe, nil
	}

	loginResp, err := s.client.Login(ctx, funval.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return "", "", nil, err
	}

	auth := funval.Auth{Token: loginResp.Token}
	profile, err := s.client.Profile(ctx, auth)
	if err != nil {
		return "", "", nil, err
	}

	role = profile.Role.Name
	if !models.Known(role) {
		s.logger.Warn("login with unrecognized role", zap.String("role", role))
		return "", "", nil, appErrors.Clone(appErrors.ErrForbidden, "your account has no dashboard access")
	}

	return loginResp.Token, role, nil, nil
}

// Profile loads the current user.
func (s *AuthService) Profile(ctx context.Context, auth funval.Auth) (*models.User, error) {
	return s.client.Profile(ctx, auth)
}

// ChangePassword validates and applies a password change.
func (s *AuthService) ChangePassword(ctx context.Context, auth funval.Auth, form ChangePasswordForm) (FieldErrors, error) {
	fe := validateStruct(s.validator, form)
	if fe == nil {
		fe = FieldErrors{}
	}
	if form.NewPassword != "" && form.ConfirmPassword != "" && form.NewPassword != form.ConfirmPassword {
		fe["ConfirmPassword"] = "passwords do not match"
	}
	if !fe.Valid() {
		return fe, nil
	}

	err := s.client.ChangePassword(ctx, auth, funval.ChangePasswordRequest{
		OldPassword: form.OldPassword,
		NewPassword: form.NewPassword,
	})
	return nil, err
}

// Logout invalidates the token server-side, best effort.
func (s *AuthService) Logout(ctx context.Context, auth funval.Auth) {
	if err := s.client.Logout(ctx, auth); err != nil {
		s.logger.Warn("backend logout failed", zap.Error(err))
	}
}
