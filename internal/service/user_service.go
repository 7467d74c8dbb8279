package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/filmorate/internal/model"
)

// UserService owns the user side of the domain: profile CRUD with
// validation, the friend graph mutations and queries, and the
// taste-based film recommendations (see recommendation.go).
type UserService struct {
	users   UserStore
	friends FriendStore
	likes   LikeStore
	films   FilmStore
	pub     ActivityPublisher
}

func NewUserService(users UserStore, friends FriendStore, likes LikeStore,
	films FilmStore, pub ActivityPublisher) *UserService {
	return &UserService{users: users, friends: friends, likes: likes, films: films, pub: pub}
}

// Users returns all registered users.
func (s *UserService) Users(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UserByID returns one user or repository.ErrNotFound.
func (s *UserService) UserByID(ctx context.Context, id uint64) (model.User, error) {
	return s.users.ByID(ctx, id)
}

// UserByEmail returns one user or repository.ErrNotFound; the auth
// login flow uses it to resolve credentials.
func (s *UserService) UserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.users.ByEmail(ctx, email)
}

// AddUser validates and stores a new user. A blank display name
// defaults to the login.
func (s *UserService) AddUser(ctx context.Context, u model.User) (model.User, error) {
	normalized, err := validateUser(u)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.users.Create(ctx, normalized)
	if err != nil {
		return model.User{}, err
	}
	slog.Info("user added", "user_id", id)
	return s.users.ByID(ctx, id)
}

// UpdateUser validates and rewrites an existing user's profile.
func (s *UserService) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	if _, err := s.users.ByID(ctx, u.ID); err != nil {
		return model.User{}, err
	}
	normalized, err := validateUser(u)
	if err != nil {
		return model.User{}, err
	}
	if err := s.users.Update(ctx, normalized); err != nil {
		return model.User{}, err
	}
	slog.Info("user updated", "user_id", u.ID)
	return s.users.ByID(ctx, u.ID)
}

// DeleteUser removes a user and, through the schema, their likes,
// friend edges and events.
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}

// AddFriend creates a directed friend edge from user to friend and
// reports nothing to the caller when the edge already existed.
// Friending yourself is rejected.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint64) error {
	if userID == friendID {
		return fmt.Errorf("%w: cannot friend yourself", ErrInvalidArgument)
	}
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.users.ByID(ctx, friendID); err != nil {
		return err
	}
	created, err := s.friends.AddFriend(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if created {
		slog.Info("friend added", "user_id", userID, "friend_id", friendID)
		publishActivity(ctx, s.pub, userID, friendID, model.EventFriend, model.OperationAdd)
	}
	return nil
}

// RemoveFriend deletes the directed edge from user to friend.
// Removing an edge that does not exist is an idempotent no-op.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint64) error {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.users.ByID(ctx, friendID); err != nil {
		return err
	}
	removed, err := s.friends.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if removed {
		slog.Info("friend removed", "user_id", userID, "friend_id", friendID)
		publishActivity(ctx, s.pub, userID, friendID, model.EventFriend, model.OperationRemove)
	}
	return nil
}

// Friends returns the users the given user lists as friends.
func (s *UserService) Friends(ctx context.Context, userID uint64) ([]model.User, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.friends.FriendsOf(ctx, userID)
}

// MutualFriends returns the intersection of two users' friend sets.
func (s *UserService) MutualFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.users.ByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.friends.MutualFriends(ctx, userID, otherID)
}

func validateUser(u model.User) (model.User, error) {
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return model.User{}, fmt.Errorf("%w: email is malformed", ErrInvalidArgument)
	}
	if u.Login == "" || strings.Contains(u.Login, " ") {
		return model.User{}, fmt.Errorf("%w: login must not be blank or contain spaces", ErrInvalidArgument)
	}
	if u.Birthday.After(time.Now()) {
		return model.User{}, fmt.Errorf("%w: birthday lies in the future", ErrInvalidArgument)
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return u, nil
}
