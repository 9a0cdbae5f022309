package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/session"
)

// ContextSessionKey is the gin context key storing the current session.
const ContextSessionKey = "currentSession"

// RequireSession protects routes by requiring a live session. Without one the
// request is redirected to the login screen. The check runs on every request;
// nothing is cached between navigations.
func RequireSession(store *session.Store, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		data, err := store.Get(c)
		if err != nil {
			logger.Warn("session lookup failed", zap.Error(err))
			redirect(c, "/login")
			return
		}
		if data == nil {
			redirect(c, "/login")
			return
		}

		c.Set(ContextSessionKey, data)
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. An empty list admits
// any authenticated session. A role outside the list is sent to its own home
// screen; an unrecognized role loses its session and lands on login.
func RequireRoles(store *session.Store, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := SessionFromContext(c)
		if data == nil {
			redirect(c, "/login")
			return
		}

		if len(allowed) == 0 {
			c.Next()
			return
		}

		for _, role := range allowed {
			if data.Role == role {
				c.Next()
				return
			}
		}

		if !models.Known(data.Role) {
			_ = store.Clear(c)
			redirect(c, "/login")
			return
		}

		redirect(c, models.HomePath(data.Role))
	}
}

// SessionFromContext returns the session attached by RequireSession.
func SessionFromContext(c *gin.Context) *session.Data {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	data, ok := value.(*session.Data)
	if !ok {
		return nil
	}
	return data
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}
