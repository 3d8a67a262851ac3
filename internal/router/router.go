// Package router wires the HTTP surface: public login, guarded resource
// groups, cached list/detail reads and the terminal error handler.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/handler"
	"github.com/pandhuwib/go-blog-api/internal/middleware"
	"github.com/pandhuwib/go-blog-api/internal/utils"
)

// Deps carries the constructed handlers and middleware into Register.
// Everything is built in main and injected; no package-level state.
type Deps struct {
	Env       string
	UploadDir string
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Roles     *handler.UserRoleHandler
	Statuses  *handler.UserStatusHandler
	Posts     *handler.PostHandler
	Guard     echo.MiddlewareFunc
	Cache     *middleware.ResponseCache
}

// Register mounts all application routes on the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = NewErrorHandler(d.Env)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/api")
	})
	e.GET("/api", func(c echo.Context) error {
		return utils.OK(c, "I AM YOUR FATHER!", nil)
	})
	e.Static("/static", d.UploadDir)

	api := e.Group("/api")

	// Login is the only public endpoint.
	api.POST("/auth", d.Auth.Login)

	auth := api.Group("/auth", d.Guard)
	auth.GET("/user", d.Auth.User)
	auth.PUT("/user", d.Auth.UpdateUser)
	auth.GET("/refresh-token", d.Auth.RefreshToken)

	users := api.Group("/users", d.Guard)
	users.GET("", d.Users.List, d.Cache.Middleware("users"))
	users.POST("", d.Users.Store)
	users.GET("/:id", d.Users.Get, d.Cache.Middleware("users"))
	users.PUT("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)

	roles := api.Group("/user-roles", d.Guard)
	roles.GET("", d.Roles.List, d.Cache.Middleware("user-roles"))
	roles.POST("", d.Roles.Store)
	roles.GET("/:id", d.Roles.Get, d.Cache.Middleware("user-roles"))
	roles.PUT("/:id", d.Roles.Update)
	roles.DELETE("/:id", d.Roles.Delete)

	statuses := api.Group("/user-statuses", d.Guard)
	statuses.GET("", d.Statuses.List, d.Cache.Middleware("user-statuses"))
	statuses.POST("", d.Statuses.Store)
	statuses.GET("/:id", d.Statuses.Get, d.Cache.Middleware("user-statuses"))
	statuses.PUT("/:id", d.Statuses.Update)
	statuses.DELETE("/:id", d.Statuses.Delete)

	posts := api.Group("/posts", d.Guard)
	posts.GET("", d.Posts.List, d.Cache.Middleware("posts"))
	posts.POST("", d.Posts.Store)
	posts.GET("/:id", d.Posts.Get, d.Cache.Middleware("posts"))
	posts.PUT("/:id", d.Posts.Update)
	posts.DELETE("/:id", d.Posts.Delete)
}
