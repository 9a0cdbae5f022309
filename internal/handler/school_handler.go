package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// SchoolHandler owns the admin schools screens.
type SchoolHandler struct {
	schools *service.SchoolService
	store   *session.Store
}

// NewSchoolHandler creates a new school handler.
func NewSchoolHandler(schools *service.SchoolService, store *session.Store) *SchoolHandler {
	return &SchoolHandler{schools: schools, store: store}
}

// List renders the schools table with search and pagination.
func (h *SchoolHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, err := h.schools.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "schools_list.tmpl", gin.H{
		"Title":   "Schools",
		"Listing": listing,
	})
}

// New renders the empty create form.
func (h *SchoolHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "schools_form.tmpl", gin.H{
		"Title": "New school",
		"Form":  service.SchoolForm{},
	})
}

// Create handles the create form submission.
func (h *SchoolHandler) Create(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form service.SchoolForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.schools.Create(c.Request.Context(), auth, form)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		render(c, http.StatusBadRequest, "schools_form.tmpl", gin.H{
			"Title": "New school",
			"Form":  form,
			"Alert": alertMessage(err),
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "schools_form.tmpl", gin.H{
			"Title":  "New school",
			"Form":   form,
			"Errors": fieldErrs,
		})
		return
	}

	redirectWithNotice(c, "/admin/schools", "School created")
}

// Edit renders the edit form seeded from the record.
func (h *SchoolHandler) Edit(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/schools", "unknown school")
		return
	}

	school, err := h.schools.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "schools_form.tmpl", gin.H{
		"Title":  "Edit school",
		"EditID": school.ID,
		"Form":   service.SchoolForm{Name: school.Name},
	})
}

// Update handles the edit form submission.
func (h *SchoolHandler) Update(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/schools", "unknown school")
		return
	}

	var form service.SchoolForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.schools.Update(c.Request.Context(), auth, id, form)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		render(c, http.StatusBadRequest, "schools_form.tmpl", gin.H{
			"Title":  "Edit school",
			"EditID": id,
			"Form":   form,
			"Alert":  alertMessage(err),
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "schools_form.tmpl", gin.H{
			"Title":  "Edit school",
			"EditID": id,
			"Form":   form,
			"Errors": fieldErrs,
		})
		return
	}

	redirectWithNotice(c, "/admin/schools", "School updated")
}
