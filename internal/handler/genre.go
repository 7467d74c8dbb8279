package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/service"
)

// GenreHandler serves the genre and MPA rating dictionaries.
type GenreHandler struct {
	Films *service.FilmService
}

func NewGenreHandler(films *service.FilmService) *GenreHandler {
	if films == nil {
		panic("nil service passed to NewGenreHandler")
	}
	return &GenreHandler{Films: films}
}

// ListGenres handles GET /v1/genres.
func (h *GenreHandler) ListGenres(c echo.Context) error {
	genres, err := h.Films.Genres(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// GetGenre handles GET /v1/genres/:id.
func (h *GenreHandler) GetGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Films.GenreByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// ListMpa handles GET /v1/mpa.
func (h *GenreHandler) ListMpa(c echo.Context) error {
	ratings, err := h.Films.MpaRatings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// GetMpa handles GET /v1/mpa/:id.
func (h *GenreHandler) GetMpa(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Films.MpaByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
