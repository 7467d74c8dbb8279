// Package handler contains the HTTP handlers. Handlers bind and
// parse requests, delegate to the service layer and translate the
// error kinds into status codes; they hold no business logic.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/repository"
	"github.com/iliyamo/filmorate/internal/service"
)

// dateLayout is the wire format for birthday and release_date fields.
const dateLayout = "2006-01-02"

// writeError maps the service/repository error kinds onto HTTP
// status codes: not found -> 404, invalid argument -> 400, duplicate
// email -> 409, anything else is a storage failure -> 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pathID64 parses a raw id string, used for query parameters that
// carry entity ids.
func pathID64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// queryInt parses an optional integer query parameter, returning def
// when absent. A non-numeric value yields an error so handlers can
// reject it instead of silently using the default.
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// parseDate parses a yyyy-mm-dd field.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
