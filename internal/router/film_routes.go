package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/handler"
)

// RegisterFilms registers film CRUD, likes, and the ranked read
// endpoints (popular, by-director, common, search) under /v1/films.
// The read endpoints are grouped so callers can attach a response
// cache to them without caching mutations.
func RegisterFilms(e *echo.Echo, h *handler.FilmHandler, readMW ...echo.MiddlewareFunc) {
	g := e.Group("/v1/films")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("", h.Update) // the body carries the film id
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)

	g.PUT("/:id/like/:userId", h.AddLike)
	g.DELETE("/:id/like/:userId", h.RemoveLike)

	// Ranked reads; these tolerate short cache staleness.
	g.GET("/popular", h.Popular, readMW...)
	g.GET("/director/:directorId", h.ByDirector, readMW...)
	g.GET("/common", h.Common, readMW...)
	g.GET("/search", h.Search, readMW...)
}
