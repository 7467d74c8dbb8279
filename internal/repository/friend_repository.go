package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/filmorate/internal/model"
)

// FriendRepo maintains the directed friend relation. An edge from A
// to B means A considers B a friend; the reverse edge is independent.
// Mutations write the edge and its activity event in one transaction.
type FriendRepo struct{ DB *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{DB: db} }

// AddFriend creates an edge from owner to target and reports whether
// it was newly created. Duplicate requests are idempotent no-ops and
// append no event.
func (r *FriendRepo) AddFriend(ctx context.Context, ownerID, targetID uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO friends (owner_id, friend_id) VALUES (?,?)", ownerID, targetID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := insertEventTx(ctx, tx, ownerID, targetID, model.EventFriend, model.OperationAdd); err != nil {
			return false, err
		}
	}
	return n == 1, tx.Commit()
}

// RemoveFriend deletes the edge from owner to target if present.
func (r *FriendRepo) RemoveFriend(ctx context.Context, ownerID, targetID uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM friends WHERE owner_id=? AND friend_id=?", ownerID, targetID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := insertEventTx(ctx, tx, ownerID, targetID, model.EventFriend, model.OperationRemove); err != nil {
			return false, err
		}
	}
	return n == 1, tx.Commit()
}

// FriendsOf returns the users the given user lists as friends.
func (r *FriendRepo) FriendsOf(ctx context.Context, userID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE id IN (SELECT friend_id FROM friends WHERE owner_id=?) ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// MutualFriends returns the intersection of two users' outgoing
// friend sets.
func (r *FriendRepo) MutualFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE id IN (SELECT fa.friend_id FROM friends fa
		              JOIN friends fb ON fb.friend_id = fa.friend_id
		              WHERE fa.owner_id=? AND fb.owner_id=?) ORDER BY id`, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}
