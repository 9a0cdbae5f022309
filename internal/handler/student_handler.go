package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// StudentHandler owns the admin students screens and the PDF report.
type StudentHandler struct {
	students *service.StudentService
	store    *session.Store
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(students *service.StudentService, store *session.Store) *StudentHandler {
	return &StudentHandler{students: students, store: store}
}

// List renders the students table with search and pagination.
func (h *StudentHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, err := h.students.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "students_list.tmpl", gin.H{
		"Title":   "Students",
		"Listing": listing,
	})
}

// Detail renders a student with schools, supervision, and service history.
func (h *StudentHandler) Detail(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/students", "unknown student")
		return
	}

	student, err := h.students.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "students_detail.tmpl", gin.H{
		"Title":   "Student detail",
		"Student": student,
	})
}

// Report streams the student PDF report as a download.
func (h *StudentHandler) Report(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/students", "unknown student")
		return
	}

	pdf, filename, err := h.students.Report(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
