package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/handler"
)

// RegisterUsers registers user, friendship, recommendation and feed
// endpoints under /v1/users.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/v1/users")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("", h.Update) // the body carries the user id
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)

	// Friendship is one-directional: PUT adds friendId to :id's friend
	// list without touching the reverse edge.
	g.PUT("/:id/friends/:friendId", h.AddFriend)
	g.DELETE("/:id/friends/:friendId", h.RemoveFriend)
	g.GET("/:id/friends", h.Friends)
	g.GET("/:id/friends/common/:otherId", h.MutualFriends)

	g.GET("/:id/recommendations", h.Recommendations)
	g.GET("/:id/feed", h.Feed)
}
