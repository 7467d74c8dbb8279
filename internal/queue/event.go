// Package queue defines message payloads exchanged over the message
// broker plus the publisher and background consumer for them.
package queue

import (
	"time"

	"github.com/iliyamo/filmorate/internal/model"
)

// ActivityQueueName is the durable queue carrying like/friend
// activity messages.
const ActivityQueueName = "activity.events"

// ActivityEvent is published after a like/friend mutation commits.
// It mirrors the persisted event row closely enough for downstream
// consumers to log, notify or feed analytics without querying the
// primary database.
type ActivityEvent struct {
	UserID     uint64 `json:"user_id"`
	EntityID   uint64 `json:"entity_id"`
	EventType  string `json:"event_type"`
	Operation  string `json:"operation"`
	OccurredAt string `json:"occurred_at"`
}

// NewActivityEvent builds the broker payload for one committed
// mutation, stamping the publish time in UTC RFC 3339.
func NewActivityEvent(userID, entityID uint64, et model.EventType, op model.Operation) ActivityEvent {
	return ActivityEvent{
		UserID:     userID,
		EntityID:   entityID,
		EventType:  string(et),
		Operation:  string(op),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
