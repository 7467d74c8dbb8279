package service

import (
	"context"
	"log/slog"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/queue"
	"github.com/iliyamo/filmorate/internal/repository"
)

// The storage contracts below are satisfied by the repository types
// and by the in-memory fakes used in tests. Methods that look up a
// single entity return repository.ErrNotFound when it is missing.

type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id uint64) (model.User, error)
	ByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (uint64, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id uint64) error
}

type FilmStore interface {
	List(ctx context.Context) ([]model.Film, error)
	ByID(ctx context.Context, id uint64) (model.Film, error)
	ByIDs(ctx context.Context, ids []uint64) ([]model.Film, error)
	ByDirector(ctx context.Context, directorID uint64) ([]model.Film, error)
	CommonFilms(ctx context.Context, userID, friendID uint64) ([]model.Film, error)
	Search(ctx context.Context, q repository.FilmSearchQuery) ([]model.Film, error)
	Create(ctx context.Context, f model.Film) (uint64, error)
	Update(ctx context.Context, f model.Film) error
	Delete(ctx context.Context, id uint64) error
}

// LikeStore is the Like Index. AddLike and RemoveLike report whether
// the edge actually changed and record the matching activity event
// in the same transaction, so the edge set and the event log can
// never disagree.
type LikeStore interface {
	AddLike(ctx context.Context, filmID, userID uint64) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID uint64) (bool, error)
	FilmIDsLikedBy(ctx context.Context, userID uint64) ([]uint64, error)
	UserIDsWhoLiked(ctx context.Context, filmID uint64) ([]uint64, error)
	LikeCount(ctx context.Context, filmID uint64) (int, error)
	Popular(ctx context.Context, count int, genreID uint64, year int) ([]model.Film, error)
}

// FriendStore is the friend graph. Mutations carry the same
// atomic-event contract as LikeStore.
type FriendStore interface {
	AddFriend(ctx context.Context, ownerID, targetID uint64) (bool, error)
	RemoveFriend(ctx context.Context, ownerID, targetID uint64) (bool, error)
	FriendsOf(ctx context.Context, userID uint64) ([]model.User, error)
	MutualFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error)
}

type EventStore interface {
	FeedFor(ctx context.Context, userID uint64) ([]model.Event, error)
}

type GenreStore interface {
	List(ctx context.Context) ([]model.Genre, error)
	ByID(ctx context.Context, id uint64) (model.Genre, error)
}

type MpaStore interface {
	List(ctx context.Context) ([]model.Mpa, error)
	ByID(ctx context.Context, id uint64) (model.Mpa, error)
}

type DirectorStore interface {
	List(ctx context.Context) ([]model.Director, error)
	ByID(ctx context.Context, id uint64) (model.Director, error)
	Create(ctx context.Context, name string) (uint64, error)
	Update(ctx context.Context, d model.Director) error
	Delete(ctx context.Context, id uint64) error
}

// ActivityPublisher forwards committed mutations to the message
// broker for downstream consumers. Publishing is best-effort: it
// happens after the transaction commits and failures never fail the
// request.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, e queue.ActivityEvent) error
}

// publishActivity sends one activity message, tolerating a nil
// publisher (tests, broker disabled) and logging failures.
func publishActivity(ctx context.Context, pub ActivityPublisher, userID, entityID uint64,
	et model.EventType, op model.Operation) {
	if pub == nil {
		return
	}
	e := queue.NewActivityEvent(userID, entityID, et, op)
	if err := pub.PublishActivity(ctx, e); err != nil {
		slog.Warn("activity publish failed", "event_type", e.EventType, "operation", e.Operation, "error", err)
	}
}
