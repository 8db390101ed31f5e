package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/handler"
)

// RegisterRoutes installs the ambient middleware (request logging, panic
// recovery, CORS with credentials for the cross-site cookie flow), the
// custom error handler, and the unauthenticated base routes.
func RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.HTTPErrorHandler = errorHandler

	// Liveness probe for load balancers and monitoring.
	e.GET("/api/health", handler.Health)
}

// errorHandler shapes every error Echo itself produces into the API's
// envelope. Handlers map their own failures locally, so in practice this is
// the unmatched-route 404 plus whatever Recover turns a panic into.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if code == http.StatusNotFound {
			msg = "Route not found"
		} else if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	_ = c.JSON(code, echo.Map{"success": false, "message": msg})
}

// RegisterAuth registers the authentication surface under /api/auth. The
// rate limiter shields the credential endpoints from brute force; the gate
// protects only the profile route — refresh authenticates with its own
// cookie and logout merely clears cookies.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.POST("/refresh-token", a.Refresh)
	g.GET("/user", a.Profile, gate)
}

// RegisterResources registers the CRUD surface. Every route sits behind the
// auth gate.
func RegisterResources(e *echo.Echo, gate echo.MiddlewareFunc, tasks *handler.TaskHandler, teams *handler.TeamHandler, projects *handler.ProjectHandler, tags *handler.TagHandler) {
	api := e.Group("/api", gate)

	api.POST("/tasks", tasks.Create)
	api.GET("/tasks", tasks.List)
	api.GET("/tasks/:id", tasks.GetOne)
	api.PUT("/tasks/:id", tasks.Update)
	api.DELETE("/tasks/:id", tasks.Delete)

	api.POST("/teams", teams.Create)
	api.GET("/teams", teams.List)
	api.GET("/teams/:id", teams.GetOne)
	api.PUT("/teams/:id", teams.Update)
	api.DELETE("/teams/:id", teams.Delete)

	api.POST("/projects", projects.Create)
	api.GET("/projects", projects.List)
	api.GET("/projects/:id", projects.GetOne)
	api.PUT("/projects/:id", projects.Update)
	api.DELETE("/projects/:id", projects.Delete)

	api.POST("/tags", tags.Create)
	api.GET("/tags", tags.List)
	api.GET("/tags/:id", tags.GetOne)
	api.PUT("/tags/:id", tags.Update)
	api.DELETE("/tags/:id", tags.Delete)
}

// RegisterReports registers the three report routes behind the auth gate.
func RegisterReports(e *echo.Echo, gate echo.MiddlewareFunc, reports *handler.ReportHandler) {
	g := e.Group("/api/reports", gate)
	g.GET("/last-week", reports.LastWeek)
	g.GET("/pending", reports.Pending)
	g.GET("/closed-tasks", reports.ClosedTasks)
}
