package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
)

// ServiceHandler owns the service-hour screens: the admin review flow and the
// student submission flow.
type ServiceHandler struct {
	records    *service.RecordService
	categories *service.CategoryService
	store      *session.Store
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(records *service.RecordService, categories *service.CategoryService, store *session.Store) *ServiceHandler {
	return &ServiceHandler{records: records, categories: categories, store: store}
}

// List renders the services table. The backend scopes students to their own
// submissions, so both roles share this screen.
func (h *ServiceHandler) List(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	listing, totals, err := h.records.List(c.Request.Context(), auth, listQuery(c))
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	sess := currentSession(c)
	render(c, http.StatusOK, "services_list.tmpl", gin.H{
		"Title":     "Services",
		"Listing":   listing,
		"Totals":    totals,
		"IsStudent": sess != nil && sess.Role == models.RoleStudent,
	})
}

// Detail renders a submission. Admins get the review form while the service
// is pending; once reviewed the screen is read-only for everyone, with the
// evidence still downloadable.
func (h *ServiceHandler) Detail(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, servicesPath(c), "unknown service")
		return
	}

	svc, err := h.records.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	sess := currentSession(c)
	render(c, http.StatusOK, "services_detail.tmpl", gin.H{
		"Title":     "Service detail",
		"Service":   svc,
		"CanReview": sess != nil && sess.Role == models.RoleAdmin && !svc.Reviewed(),
		"Form":      service.ReviewForm{Decision: service.DecisionApprove},
	})
}

// Review applies the terminal decision. Validation failures re-render the
// detail with the form state intact; success redirects to the refreshed list.
func (h *ServiceHandler) Review(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, "/admin/services", "unknown service")
		return
	}

	svc, err := h.records.Get(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	var form service.ReviewForm
	_ = c.ShouldBind(&form)

	fieldErrs, err := h.records.Review(c.Request.Context(), auth, svc, form)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		render(c, http.StatusConflict, "services_detail.tmpl", gin.H{
			"Title":     "Service detail",
			"Service":   svc,
			"CanReview": !svc.Reviewed(),
			"Form":      form,
			"Alert":     alertMessage(err),
		})
		return
	}
	if !fieldErrs.Valid() {
		render(c, http.StatusBadRequest, "services_detail.tmpl", gin.H{
			"Title":     "Service detail",
			"Service":   svc,
			"CanReview": true,
			"Form":      form,
			"Errors":    fieldErrs,
		})
		return
	}

	redirectWithNotice(c, "/admin/services", "Review saved")
}

// New renders the student submission form with the category select.
func (h *ServiceHandler) New(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	categories, err := h.categories.All(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	render(c, http.StatusOK, "services_form.tmpl", gin.H{
		"Title":      "Report service hours",
		"Categories": categories,
		"Form":       service.SubmitServiceForm{},
	})
}

// Create handles the student submission, evidence file included.
func (h *ServiceHandler) Create(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form service.SubmitServiceForm
	_ = c.ShouldBind(&form)

	evidence, err := c.FormFile("evidence")
	if err != nil {
		evidence = nil
	}

	fieldErrs, err := h.records.Submit(c.Request.Context(), auth, form, evidence)
	if err != nil {
		if isSessionExpired(err) {
			failScreen(c, h.store, err)
			return
		}
		h.renderSubmitFailure(c, form, gin.H{"Alert": alertMessage(err)})
		return
	}
	if !fieldErrs.Valid() {
		h.renderSubmitFailure(c, form, gin.H{"Errors": fieldErrs})
		return
	}

	redirectWithNotice(c, "/student/services", "Service hours submitted")
}

// Evidence proxies the PDF download for a submission.
func (h *ServiceHandler) Evidence(c *gin.Context) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	id, ok := idParam(c)
	if !ok {
		redirectWithAlert(c, servicesPath(c), "unknown service")
		return
	}

	evidence, err := h.records.Evidence(c.Request.Context(), auth, id)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.EvidenceFilename(id)+`"`)
	c.Data(http.StatusOK, evidence.ContentType, evidence.Body)
}

func (h *ServiceHandler) renderSubmitFailure(c *gin.Context, form service.SubmitServiceForm, extra gin.H) {
	auth, ok := authFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	categories, err := h.categories.All(c.Request.Context(), auth)
	if err != nil {
		failScreen(c, h.store, err)
		return
	}

	data := gin.H{
		"Title":      "Report service hours",
		"Categories": categories,
		"Form":       form,
	}
	for k, v := range extra {
		data[k] = v
	}
	render(c, http.StatusBadRequest, "services_form.tmpl", data)
}

// servicesPath keeps redirects inside the caller's role section.
func servicesPath(c *gin.Context) string {
	if sess := currentSession(c); sess != nil && sess.Role == models.RoleStudent {
		return "/student/services"
	}
	return "/admin/services"
}
