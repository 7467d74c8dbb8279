package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/service"
)

// FilmHandler serves the film catalogue: CRUD, likes, popularity
// rankings, director listings, common films and search.
type FilmHandler struct {
	Films *service.FilmService
}

func NewFilmHandler(films *service.FilmService) *FilmHandler {
	if films == nil {
		panic("nil service passed to NewFilmHandler")
	}
	return &FilmHandler{Films: films}
}

// filmRequest is the JSON payload for creating or updating a film.
// Mpa, genres and director are referenced by id only.
type filmRequest struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	Duration    int    `json:"duration"`
	Mpa         struct {
		ID uint64 `json:"id"`
	} `json:"mpa"`
	Genres []struct {
		ID uint64 `json:"id"`
	} `json:"genres"`
	Director *struct {
		ID uint64 `json:"id"`
	} `json:"director"`
}

func (b filmRequest) toModel() (model.Film, error) {
	release, err := parseDate(b.ReleaseDate)
	if err != nil {
		return model.Film{}, err
	}
	f := model.Film{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		ReleaseDate: release,
		Duration:    b.Duration,
		Mpa:         model.Mpa{ID: b.Mpa.ID},
	}
	for _, g := range b.Genres {
		f.Genres = append(f.Genres, model.Genre{ID: g.ID})
	}
	if b.Director != nil {
		f.Director = &model.Director{ID: b.Director.ID}
	}
	return f, nil
}

// List handles GET /v1/films.
func (h *FilmHandler) List(c echo.Context) error {
	films, err := h.Films.Films(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// Get handles GET /v1/films/:id.
func (h *FilmHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	film, err := h.Films.FilmByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, film)
}

// Create handles POST /v1/films.
func (h *FilmHandler) Create(c echo.Context) error {
	var body filmRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	film, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be yyyy-mm-dd"})
	}
	created, err := h.Films.AddFilm(c.Request().Context(), film)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/films.
func (h *FilmHandler) Update(c echo.Context) error {
	var body filmRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	film, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be yyyy-mm-dd"})
	}
	updated, err := h.Films.UpdateFilm(c.Request().Context(), film)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/films/:id.
func (h *FilmHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Films.DeleteFilm(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddLike handles PUT /v1/films/:id/like/:userId.
func (h *FilmHandler) AddLike(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	film, err := h.Films.AddLike(c.Request().Context(), filmID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, film)
}

// RemoveLike handles DELETE /v1/films/:id/like/:userId.
func (h *FilmHandler) RemoveLike(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	film, err := h.Films.RemoveLike(c.Request().Context(), filmID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, film)
}

// Popular handles GET /v1/films/popular?count=&genreId=&year=.
func (h *FilmHandler) Popular(c echo.Context) error {
	count, err := queryInt(c, "count", 10)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be numeric"})
	}
	genreID, err := queryInt(c, "genreId", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "genreId must be numeric"})
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year must be numeric"})
	}
	films, err := h.Films.PopularFilms(c.Request().Context(), count, genreID, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// ByDirector handles GET /v1/films/director/:directorId?sortBy=likes|year.
func (h *FilmHandler) ByDirector(c echo.Context) error {
	directorID, err := pathID(c, "directorId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid director id"})
	}
	films, err := h.Films.FilmsByDirector(c.Request().Context(), directorID, c.QueryParam("sortBy"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// Common handles GET /v1/films/common?userId=&friendId=.
func (h *FilmHandler) Common(c echo.Context) error {
	userID, err := pathID64(c.QueryParam("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId must be numeric"})
	}
	friendID, err := pathID64(c.QueryParam("friendId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "friendId must be numeric"})
	}
	films, err := h.Films.CommonFilms(c.Request().Context(), userID, friendID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// Search handles GET /v1/films/search?query=&by=.
func (h *FilmHandler) Search(c echo.Context) error {
	films, err := h.Films.Search(c.Request().Context(), c.QueryParam("query"), c.QueryParam("by"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}
