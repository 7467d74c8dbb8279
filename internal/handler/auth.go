package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/repository"
	"github.com/iliyamo/filmorate/internal/service"
	"github.com/iliyamo/filmorate/internal/utils"
)

// AuthHandler implements the small credential surface: register,
// login and the authenticated profile endpoint. Domain routes are
// open; auth exists so clients can manage their own account.
type AuthHandler struct {
	Users        *service.UserService
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

func NewAuthHandler(users *service.UserService, secret string, accessTTLMin, bcryptCost int) *AuthHandler {
	if users == nil {
		panic("nil service passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, JWTSecret: secret, AccessTTLMin: accessTTLMin, BcryptCost: bcryptCost}
}

// Register handles POST /v1/auth/register. It creates a user with
// credentials; the profile fields go through the same validation as
// plain user CRUD.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Login    string `json:"login"`
		Name     string `json:"name"`
		Birthday string `json:"birthday"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	birthday, err := parseDate(body.Birthday)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birthday must be yyyy-mm-dd"})
	}
	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	created, err := h.Users.AddUser(c.Request().Context(), model.User{
		Email:        body.Email,
		Login:        body.Login,
		Name:         body.Name,
		Birthday:     birthday,
		PasswordHash: hash,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Login handles POST /v1/auth/login and exchanges credentials for an
// HS256 access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Users.UserByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return writeError(c, err)
	}
	if u.PasswordHash == "" || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}

// Me handles GET /v1/me and returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.UserByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// getUserID extracts the user_id claim set by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
