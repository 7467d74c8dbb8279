package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/handler"
)

// RegisterCatalog registers the reference-data endpoints: genres, MPA
// ratings and directors. Genres and MPA ratings are read-only;
// directors support full CRUD.
func RegisterCatalog(e *echo.Echo, gh *handler.GenreHandler, dh *handler.DirectorHandler) {
	e.GET("/v1/genres", gh.ListGenres)
	e.GET("/v1/genres/:id", gh.GetGenre)

	e.GET("/v1/mpa", gh.ListMpa)
	e.GET("/v1/mpa/:id", gh.GetMpa)

	d := e.Group("/v1/directors")
	d.GET("", dh.List)
	d.GET("/:id", dh.Get)
	d.POST("", dh.Create)
	d.PUT("", dh.Update) // the body carries the director id
	d.DELETE("/:id", dh.Delete)
}
