package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/service"
)

// DirectorHandler serves the director directory.
type DirectorHandler struct {
	Directors *service.DirectorService
}

func NewDirectorHandler(directors *service.DirectorService) *DirectorHandler {
	if directors == nil {
		panic("nil service passed to NewDirectorHandler")
	}
	return &DirectorHandler{Directors: directors}
}

// List handles GET /v1/directors.
func (h *DirectorHandler) List(c echo.Context) error {
	directors, err := h.Directors.Directors(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, directors)
}

// Get handles GET /v1/directors/:id.
func (h *DirectorHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Directors.DirectorByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Create handles POST /v1/directors.
func (h *DirectorHandler) Create(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.Directors.AddDirector(c.Request().Context(), body.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// Update handles PUT /v1/directors.
func (h *DirectorHandler) Update(c echo.Context) error {
	var body struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.Directors.UpdateDirector(c.Request().Context(), model.Director{ID: body.ID, Name: body.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /v1/directors/:id.
func (h *DirectorHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Directors.DeleteDirector(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
