package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// RoleHandler owns the read-only roles screen.
type RoleHandler struct {
	roles *service.RoleService
	store *session.Store
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roles *service.RoleService, store *session.Store) *RoleHandler {
	return &RoleHandler{roles: roles, store: store}
}

// List renders the role catalogue.
func (h *RoleHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, err := h.roles.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "roles_list.tmpl", gin.H{
		"Title":   "Roles",
		"Listing": listing,
	})
}
