package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/middleware"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// render wraps c.HTML, injecting the fields every screen needs: the current
// role for nav decisions, the request path, and any flash message carried
// through the redirect query string.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sess := middleware.SessionFromContext(c); sess != nil {
		data["Role"] = sess.Role
	}
	if _, ok := data["Path"]; !ok {
		data["Path"] = c.Request.URL.Path
	}
	if _, ok := data["Notice"]; !ok {
		data["Notice"] = c.Query("notice")
	}
	if _, ok := data["Alert"]; !ok {
		data["Alert"] = c.Query("alert")
	}
	c.HTML(status, name, data)
}

// redirectWithNotice is the POST-redirect-GET success path; the next render
// of the list re-fetches from the backend, so no local patching is needed.
func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(notice))
}

func redirectWithAlert(c *gin.Context, path, alert string) {
	c.Redirect(http.StatusSeeOther, path+"?alert="+url.QueryEscape(alert))
}

// failScreen maps a handler error onto the right exit. A backend 401 clears
// the session and forces a full navigation back to login so no stale state
// survives; everything else renders the error screen with a retry link back
// to the same URL.
func failScreen(c *gin.Context, store *session.Store, err error) {
	if errors.Is(err, appErrors.ErrSessionExpired) {
		_ = store.Clear(c)
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}

	appErr := appErrors.FromError(err)
	status := appErr.Status
	if status < 400 {
		status = http.StatusInternalServerError
	}
	render(c, status, "error.tmpl", gin.H{
		"Title":    "Something went wrong",
		"Message":  appErr.Message,
		"RetryURL": c.Request.URL.String(),
	})
	c.Abort()
}

// currentSession returns the session attached by the guard middleware.
func currentSession(c *gin.Context) *session.Data {
	return middleware.SessionFromContext(c)
}

// isSessionExpired reports whether an error is the backend 401 mapping.
func isSessionExpired(err error) bool {
	return errors.Is(err, appErrors.ErrSessionExpired)
}

// alertMessage extracts the user-facing message for a dismissible alert.
func alertMessage(err error) string {
	return appErrors.FromError(err).Message
}

// listQuery reads the shared search/page parameters.
func listQuery(c *gin.Context) service.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return service.ListQuery{
		Search: c.Query("q"),
		Page:   page,
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// authFromContext builds the backend credentials for the current session.
func authFromContext(c *gin.Context) (funval.Auth, bool) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return funval.Auth{}, false
	}
	return funval.Auth{Token: sess.Token}, true
}
