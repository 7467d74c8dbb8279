package model

import "time"

// EventType labels which relation an activity event touched.
type EventType string

// Operation labels whether the relation was created or removed.
type Operation string

const (
	EventLike   EventType = "LIKE"
	EventFriend EventType = "FRIEND"

	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
)

// Event is one immutable row of the append-only `events` table. An
// event is written in the same transaction as the like/friend edge
// mutation it records and is never updated or deleted afterwards.
// The AUTO_INCREMENT id doubles as the tie-breaker for events that
// share a timestamp, so ordering by id is ordering by creation.
//
// Fields:
//  ID        – monotonic primary key, assigned by the database.
//  Timestamp – UTC creation time.
//  UserID    – the actor who performed the mutation.
//  EntityID  – the film (LIKE) or user (FRIEND) the mutation targeted.
//  EventType – LIKE or FRIEND.
//  Operation – ADD or REMOVE.
type Event struct {
	ID        uint64    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint64    `json:"user_id"`
	EntityID  uint64    `json:"entity_id"`
	EventType EventType `json:"event_type"`
	Operation Operation `json:"operation"`
}
