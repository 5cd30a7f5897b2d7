// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/handler"
	"github.com/iliyamo/movie-rental/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login. Both are unauthenticated;
// they are the endpoints that hand out tokens in the first place.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/users", a.Register)
	e.POST("/login", a.Login)
}

// RegisterGenres registers the genre endpoints. Reads are public; writes
// require a token and deletion additionally requires the admin flag. The
// browse middleware (response cache, rate limiting) applies to the public
// read endpoints only.
func RegisterGenres(e *echo.Echo, h *handler.GenreHandler, jwtSecret string, browse ...echo.MiddlewareFunc) {
	e.GET("/genres", h.List, browse...)
	e.GET("/genres/count", h.Count, browse...)
	e.POST("/genres/pfs", h.ListPage)
	e.GET("/genres/:id", h.Get, browse...)

	g := e.Group("/genres", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete, middleware.RequireAdmin())
}

// RegisterCustomers registers the customer endpoints with the same access
// split as genres.
func RegisterCustomers(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, browse ...echo.MiddlewareFunc) {
	e.GET("/customers", h.List, browse...)
	e.GET("/customers/:id", h.Get, browse...)

	g := e.Group("/customers", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete, middleware.RequireAdmin())
}

// RegisterMovies registers the movie endpoints. PATCH toggles the liked
// flag; count and pfs are POST because they accept a filter body.
func RegisterMovies(e *echo.Echo, h *handler.MovieHandler, jwtSecret string, browse ...echo.MiddlewareFunc) {
	e.GET("/movies", h.List, browse...)
	e.POST("/movies/count", h.Count)
	e.POST("/movies/pfs", h.ListPage)
	e.GET("/movies/:id", h.Get, browse...)

	g := e.Group("/movies", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.ToggleLiked)
	g.DELETE("/:id", h.Delete, middleware.RequireAdmin())
}

// RegisterRentals registers the rental workflow. Reads are public; opening
// and closing require a token, deletion requires admin.
func RegisterRentals(e *echo.Echo, h *handler.RentalHandler, jwtSecret string, browse ...echo.MiddlewareFunc) {
	e.GET("/rentals", h.List, browse...)
	e.GET("/rentals/:id", h.Get, browse...)

	g := e.Group("/rentals", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Open)
	g.PATCH("/:id", h.Close)
	g.DELETE("/:id", h.Delete, middleware.RequireAdmin())
}
