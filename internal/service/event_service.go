package service

import (
	"context"

	"github.com/iliyamo/filmorate/internal/model"
)

// EventService exposes the per-user activity feed built from the
// append-only event log.
type EventService struct {
	users  UserStore
	events EventStore
}

func NewEventService(users UserStore, events EventStore) *EventService {
	return &EventService{users: users, events: events}
}

// Feed returns the user's own activity events in ascending creation
// order. Ascending order is the documented contract of this API;
// clients wanting newest-first reverse on their side.
func (s *EventService) Feed(ctx context.Context, userID uint64) ([]model.Event, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.events.FeedFor(ctx, userID)
}
