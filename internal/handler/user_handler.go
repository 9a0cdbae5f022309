package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// UserHandler owns the admin users screens.
type UserHandler struct {
	users *service.UserService
	roles *service.RoleService
	store *session.Store
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService, roles *service.RoleService, store *session.Store) *UserHandler {
	return &UserHandler{users: users, roles: roles, store: store}
}

// List renders the users table with search and pagination.
func (h *UserHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, err := h.users.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "users_list.tmpl", gin.H{
		"Title":   "Users",
		"Listing": listing,
	})
}

// New renders the empty create form.
func (h *UserHandler) New(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	roles, err := h.roles.All(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "users_form.tmpl", gin.H{
		"Title": "New user",
		"Roles": roles,
		"Form":  service.UserForm{},
	})
}

// Create handles the create form submission. Validation failures re-render
// the form with field messages; success redirects back to the list, which
// re-fetches.
func (h *UserHandler) Create(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form service.UserForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.users.Create(c.Request.Context(), auth, form)
	if err != nil {
		h.renderFormFailure(c, auth, "New user", "", form, err)
		return
	}
	if !fieldErrs.Valid() {
		h.renderFormErrors(c, auth, "New user", "", form, fieldErrs)
		return
	}

	redirectWithNotice(c, "/admin/users", "User created")
}

// Edit renders the edit form seeded from the record.
func (h *UserHandler) Edit(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/users", "unknown user")
		return
	}

	user, err := h.users.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}
	roles, err := h.roles.All(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "users_form.tmpl", gin.H{
		"Title":  "Edit user",
		"EditID": user.ID,
		"Roles":  roles,
		"Form": service.UserForm{
			FirstName:  user.FirstName,
			MiddleName: user.MiddleName,
			LastName:   user.LastName,
			SecondLast: user.SecondLast,
			Email:      user.Email,
			RoleID:     user.Role.ID,
		},
	})
}

// Update handles the edit form submission.
func (h *UserHandler) Update(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/users", "unknown user")
		return
	}

	var form service.UserForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.users.Update(c.Request.Context(), auth, id, form)
	if err != nil {
		h.renderFormFailure(c, auth, "Edit user", c.Param("id"), form, err)
		return
	}
	if !fieldErrs.Valid() {
		h.renderFormErrors(c, auth, "Edit user", c.Param("id"), form, fieldErrs)
		return
	}

	redirectWithNotice(c, "/admin/users", "User updated")
}

// Delete removes a user and returns to the refreshed list.
func (h *UserHandler) Delete(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/users", "unknown user")
		return
	}

	if err := h.users.Delete(c.Request.Context(), auth, id); err != nil {
		failScreen(c, h.store, err)
		return
	}

	redirectWithNotice(c, "/admin/users", "User deleted")
}

// renderFormErrors re-renders the form with field messages, keeping the
// submitted values. A failed submit never rolls back other screen state.
func (h *UserHandler) renderFormErrors(c *gin.Context, auth funval.Auth, title, editID string, form service.UserForm, fieldErrs service.FieldErrors) {
	roles, err := h.roles.All(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}
	data := gin.H{
		"Title":  title,
		"Roles":  roles,
		"Form":   form,
		"Errors": fieldErrs,
	}
	if editID != "" {
		data["EditID"] = editID
	}
	render(c, http.StatusBadRequest, "users_form.tmpl", data)
}

// renderFormFailure surfaces a backend rejection above the form.
func (h *UserHandler) renderFormFailure(c *gin.Context, auth funval.Auth, title, editID string, form service.UserForm, err error) {
	if isSessionExpired(err) {
		failScreen(c, h.store, err)
		return
	}
	roles, rolesErr := h.roles.All(c.Request.Context(), auth)
	if rolesErr != nil {
		failScreen(c, h.store, rolesErr)
		return
	}
	data := gin.H{
		"Title": title,
		"Roles": roles,
		"Form":  form,
		"Alert": alertMessage(err),
	}
	if editID != "" {
		data["EditID"] = editID
	}
	render(c, http.StatusBadRequest, "users_form.tmpl", data)
}
