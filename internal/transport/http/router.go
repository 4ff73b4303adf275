package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/handlers"
	authmw "github.com/agileboard/backend/internal/middleware/auth"
)

type Deps struct {
	Auth           *authmw.Auth
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	ProjectHandler *handlers.ProjectHandler
	TaskHandler    *handlers.TaskHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/token", d.AuthHandler.Token)
	auth.POST("/register", d.AuthHandler.Register)

	session := auth.Group("", d.Auth.RequireUser)
	session.GET("/me", d.AuthHandler.Me)
	session.POST("/logout", d.AuthHandler.Logout)
	session.POST("/logout-current", d.AuthHandler.LogoutCurrent)

	users := e.Group("/users", d.Auth.RequireUser)
	users.POST("", d.UserHandler.Create, d.Auth.RequireAdmin)
	users.GET("", d.UserHandler.List)
	users.GET("/:id", d.UserHandler.Get)
	users.PUT("/:id", d.UserHandler.Update, d.Auth.RequireSelfOrAdmin)
	users.DELETE("/:id", d.UserHandler.Delete, d.Auth.RequireAdmin)

	projects := e.Group("/projects", d.Auth.RequireUser)
	projects.POST("", d.ProjectHandler.Create, d.Auth.RequireAdminOrScrumMaster)
	projects.GET("", d.ProjectHandler.List)
	projects.GET("/:id", d.ProjectHandler.Get)
	projects.PUT("/:id", d.ProjectHandler.Update, d.Auth.RequireAdminOrScrumMaster)
	projects.DELETE("/:id", d.ProjectHandler.Delete, d.Auth.RequireAdminOrScrumMaster)
	projects.GET("/:id/tasks", d.ProjectHandler.Tasks)
	projects.GET("/:id/tasks/:task_id", d.ProjectHandler.Task)

	tasks := e.Group("/tasks", d.Auth.RequireUser)
	if d.SearchHandler != nil {
		tasks.GET("/search", d.SearchHandler.Search)
	}
	tasks.POST("", d.TaskHandler.Create, d.Auth.RequireAdminOrScrumMaster)
	tasks.GET("", d.TaskHandler.List)
	tasks.GET("/:id", d.TaskHandler.Get)
	tasks.PUT("/:id", d.TaskHandler.Update, d.Auth.RequireAdminOrScrumMaster)
	tasks.DELETE("/:id", d.TaskHandler.Delete, d.Auth.RequireAdminOrScrumMaster)
}
