package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/filmorate/internal/model"
)

// EventRepo reads the append-only events table. Writes happen inside
// the like/friend mutation transactions via insertEventTx, so there
// is deliberately no standalone append method on this type.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// FeedFor returns the events where the user is the actor, in
// ascending creation order. The id is AUTO_INCREMENT, which makes it
// both the tie-breaker for equal timestamps and a stable sort key:
// repeated calls with no intervening writes return identical
// sequences. Callers wanting newest-first must reverse explicitly.
func (r *EventRepo) FeedFor(ctx context.Context, userID uint64) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, created_at, user_id, entity_id, event_type, operation
		 FROM events WHERE user_id=? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.UserID, &e.EntityID,
			&e.EventType, &e.Operation); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// insertEventTx appends one activity event within the caller's
// transaction. The timestamp is assigned by the database in UTC with
// millisecond precision.
func insertEventTx(ctx context.Context, tx *sql.Tx, userID, entityID uint64,
	et model.EventType, op model.Operation) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO events (user_id, entity_id, event_type, operation, created_at) VALUES (?,?,?,?,UTC_TIMESTAMP(3))",
		userID, entityID, string(et), string(op))
	return err
}
