package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// CategoryHandler owns the category screens. The admin version carries
// create/edit affordances; the student version is the same table rendered
// read-only.
type CategoryHandler struct {
	categories *service.CategoryService
	store      *session.Store
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories *service.CategoryService, store *session.Store) *CategoryHandler {
	return &CategoryHandler{categories: categories, store: store}
}

// List renders the categories table. Edit affordances are omitted entirely
// for students; the backend stays authoritative regardless.
func (h *CategoryHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, err := h.categories.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	sess := currentSession(c)
	render(c, http.StatusOK, "categories_list.tmpl", gin.H{
		"Title":    "Categories",
		"Listing":  listing,
		"CanWrite": sess != nil && sess.Role == models.RoleAdmin,
	})
}

// New renders the empty create form.
func (h *CategoryHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "categories_form.tmpl", gin.H{
		"Title": "New category",
		"Form":  service.CategoryForm{},
	})
}

// Create handles the create form submission.
func (h *CategoryHandler) Create(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form service.CategoryForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.categories.Create(c.Request.Context(), auth, form)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		render(c, http.StatusBadRequest, "categories_form.tmpl", gin.H{
			"Title": "New category",
			"Form":  form,
			"Alert": alertMessage(err),
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "categories_form.tmpl", gin.H{
			"Title":  "New category",
			"Form":   form,
			"Errors": fieldErrs,
		})
		return
	}

	redirectWithNotice(c, "/admin/categories", "Category created")
}

// Edit renders the edit form seeded from the record.
func (h *CategoryHandler) Edit(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/categories", "unknown category")
		return
	}

	category, err := h.categories.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "categories_form.tmpl", gin.H{
		"Title":  "Edit category",
		"EditID": category.ID,
		"Form":   service.CategoryForm{Name: category.Name, Description: category.Description},
	})
}

// Update handles the edit form submission.
func (h *CategoryHandler) Update(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/categories", "unknown category")
		return
	}

	var form service.CategoryForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.categories.Update(c.Request.Context(), auth, id, form)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		render(c, http.StatusBadRequest, "categories_form.tmpl", gin.H{
			"Title":  "Edit category",
			"EditID": id,
			"Form":   form,
			"Alert":  alertMessage(err),
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "categories_form.tmpl", gin.H{
			"Title":  "Edit category",
			"EditID": id,
			"Form":   form,
			"Errors": fieldErrs,
		})
		return
	}

	redirectWithNotice(c, "/admin/categories", "Category updated")
}
