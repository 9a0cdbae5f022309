package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// AuthHandler owns the login, logout, and profile screens.
type AuthHandler struct {
	auth   *service.AuthService
	store  *session.Store
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService, store *session.Store, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, store: store, logger: logger}
}

// ShowLogin renders the credential form. A live session skips straight to its
// home screen.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if data, err := h.store.Get(c); err == nil && data != nil {
		c.Redirect(http.StatusSeeOther, models.HomePath(data.Role))
		return
	}

	render(c, http.StatusOK, "login.tmpl", gin.H{"Title": "Sign in"})
}

// Login authenticates, persists the session, and lands on the role's home.
func (h *AuthHandler) Login(c *gin.Context) {
	var form service.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.tmpl", gin.H{
			"Title": "Sign in",
			"Alert": "invalid form submission",
			"Email": form.Email,
		})
		return
	}

	token, role, fieldErrs, err := h.auth.Login(c.Request.Context(), form)
	if err != nil {
		appErr := appErrors.FromError(err)
		render(c, http.StatusUnauthorized, "login.tmpl", gin.H{
			"Title": "Sign in",
			"Alert": appErr.Message,
			"Email": form.Email,
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "login.tmpl", gin.H{
			"Title":  "Sign in",
			"Errors": fieldErrs,
			"Email":  form.Email,
		})
		return
	}

	if err := h.store.Create(c, session.Data{Token: token, Role: role}); err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		render(c, http.StatusInternalServerError, "login.tmpl", gin.H{
			"Title": "Sign in",
			"Alert": "could not start your session, try again",
			"Email": form.Email,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, models.HomePath(role))
}

// Logout tears down both the backend token and the local session, then lands
// on login with a clean slate.
func (h *AuthHandler) Logout(c *gin.Context) {
	if data, err := h.store.Get(c); err == nil && data != nil {
		h.auth.Logout(c.Request.Context(), funval.Auth{Token: data.Token})
	}
	if err := h.store.Clear(c); err != nil {
		h.logger.Warn("failed to clear session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// Profile shows the current user and the password form.
func (h *AuthHandler) Profile(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "profile.tmpl", gin.H{
		"Title": "Profile",
		"User":  user,
	})
}

// ChangePassword applies the password form and re-renders the profile with
// the outcome.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form service.ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithAlert(c, c.Request.URL.Path, "invalid form submission")
		return
	}

	fieldErrs, err := h.auth.ChangePassword(c.Request.Context(), auth, form)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}
	if !fieldErrs.Valid() {
		user, profileErr := h.auth.Profile(c.Request.Context(), auth)
		if profileErr != nil {
			failScreen(c, h.store, profileErr)
			return
		}
		render(c, http.StatusBadRequest, "profile.tmpl", gin.H{
			"Title":  "Profile",
			"User":   user,
			"Errors": fieldErrs,
		})
		return
	}

	redirectWithNotice(c, profilePath(c), "Password updated")
}

// profilePath keeps the redirect inside the caller's role section.
func profilePath(c *gin.Context) string {
	if strings.HasPrefix(c.Request.URL.Path, "/student") {
		return "/student/profile"
	}
	return "/admin/profile"
}
