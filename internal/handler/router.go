package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/middleware"
	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/session"
)

// Handlers bundles every screen handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Categories *CategoryHandler
	Schools    *SchoolHandler
	Services   *ServiceHandler
	Students   *StudentHandler
	Roles      *RoleHandler
}

// RouterDeps carries the cross-cutting pieces the router mounts.
type RouterDeps struct {
	Store          *session.Store
	Logger         *zap.Logger
	MetricsHandler http.Handler
}

// Register mounts the routing surface: `/login`, the Admin-only `/admin/*`
// section, the Student-only `/student/*` section, and a wildcard that sends
// everyone to their role's home or to login.
func Register(r *gin.Engine, h Handlers, deps RouterDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	admin := r.Group("/admin",
		middleware.RequireSession(deps.Store, deps.Logger),
		middleware.RequireRoles(deps.Store, models.RoleAdmin),
	)
	{
		admin.GET("", redirectTo("/admin/users"))
		admin.GET("/", redirectTo("/admin/users"))

		admin.GET("/users", h.Users.List)
		admin.GET("/users/new", h.Users.New)
		admin.POST("/users", h.Users.Create)
		admin.GET("/users/:id/edit", h.Users.Edit)
		admin.POST("/users/:id", h.Users.Update)
		admin.POST("/users/:id/delete", h.Users.Delete)

		admin.GET("/categories", h.Categories.List)
		admin.GET("/categories/new", h.Categories.New)
		admin.POST("/categories", h.Categories.Create)
		admin.GET("/categories/:id/edit", h.Categories.Edit)
		admin.POST("/categories/:id", h.Categories.Update)

		admin.GET("/schools", h.Schools.List)
		admin.GET("/schools/new", h.Schools.New)
		admin.POST("/schools", h.Schools.Create)
		admin.GET("/schools/:id/edit", h.Schools.Edit)
		admin.POST("/schools/:id", h.Schools.Update)

		admin.GET("/services", h.Services.List)
		admin.GET("/services/:id", h.Services.Detail)
		admin.POST("/services/:id/review", h.Services.Review)
		admin.GET("/services/:id/evidence", h.Services.Evidence)

		admin.GET("/students", h.Students.List)
		admin.GET("/students/:id", h.Students.Detail)
		admin.GET("/students/:id/report", h.Students.Report)

		admin.GET("/roles", h.Roles.List)

		admin.GET("/profile", h.Auth.Profile)
		admin.POST("/profile/password", h.Auth.ChangePassword)
	}

	student := r.Group("/student",
		middleware.RequireSession(deps.Store, deps.Logger),
		middleware.RequireRoles(deps.Store, models.RoleStudent),
	)
	{
		student.GET("", redirectTo("/student/services"))
		student.GET("/", redirectTo("/student/services"))

		student.GET("/services", h.Services.List)
		student.GET("/services/new", h.Services.New)
		student.POST("/services", h.Services.Create)
		student.GET("/services/:id", h.Services.Detail)
		student.GET("/services/:id/evidence", h.Services.Evidence)

		student.GET("/categories", h.Categories.List)

		student.GET("/profile", h.Auth.Profile)
		student.POST("/profile/password", h.Auth.ChangePassword)
	}

	r.GET("/", roleRedirect(deps.Store))
	r.NoRoute(roleRedirect(deps.Store))
}

func redirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, location)
	}
}

// roleRedirect lands the caller on its role home, or login without a session.
func roleRedirect(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := store.Get(c)
		if err != nil || data == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.Redirect(http.StatusSeeOther, models.HomePath(data.Role))
	}
}
