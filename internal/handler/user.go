package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/service"
)

// UserHandler serves user profiles, the friend graph, the activity
// feed and per-user film recommendations.
type UserHandler struct {
	Users  *service.UserService
	Events *service.EventService
}

func NewUserHandler(users *service.UserService, events *service.EventService) *UserHandler {
	if users == nil || events == nil {
		panic("nil service passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Events: events}
}

// userRequest is the JSON payload for creating or updating a user.
type userRequest struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

func (b userRequest) toModel() (model.User, error) {
	birthday, err := parseDate(b.Birthday)
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:       b.ID,
		Email:    b.Email,
		Login:    b.Login,
		Name:     b.Name,
		Birthday: birthday,
	}, nil
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.Users(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Users.UserByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Create handles POST /v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	var body userRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birthday must be yyyy-mm-dd"})
	}
	created, err := h.Users.AddUser(c.Request().Context(), u)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/users.
func (h *UserHandler) Update(c echo.Context) error {
	var body userRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birthday must be yyyy-mm-dd"})
	}
	updated, err := h.Users.UpdateUser(c.Request().Context(), u)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.DeleteUser(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFriend handles PUT /v1/users/:id/friends/:friendId.
func (h *UserHandler) AddFriend(c echo.Context) error {
	userID, friendID, err := friendIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.AddFriend(c.Request().Context(), userID, friendID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFriend handles DELETE /v1/users/:id/friends/:friendId.
func (h *UserHandler) RemoveFriend(c echo.Context) error {
	userID, friendID, err := friendIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.RemoveFriend(c.Request().Context(), userID, friendID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Friends handles GET /v1/users/:id/friends.
func (h *UserHandler) Friends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	friends, err := h.Users.Friends(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, friends)
}

// MutualFriends handles GET /v1/users/:id/friends/common/:otherId.
func (h *UserHandler) MutualFriends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	otherID, err := pathID(c, "otherId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	friends, err := h.Users.MutualFriends(c.Request().Context(), id, otherID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, friends)
}

// Recommendations handles GET /v1/users/:id/recommendations.
func (h *UserHandler) Recommendations(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	films, err := h.Users.Recommendations(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// Feed handles GET /v1/users/:id/feed.
func (h *UserHandler) Feed(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	events, err := h.Events.Feed(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func friendIDs(c echo.Context) (uint64, uint64, error) {
	userID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}
