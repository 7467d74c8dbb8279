package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/filmorate/internal/model"
)

// LikeRepo maintains the user<->film like relation. Mutations write
// the edge and its activity event inside a single transaction so the
// event log never shows an action that did not durably happen.
type LikeRepo struct {
	DB    *sql.DB
	films *FilmRepo
}

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db, films: NewFilmRepo(db)} }

// AddLike records that a user liked a film. It reports whether the
// edge was newly created; re-liking an already liked film is a no-op
// and appends no event.
func (r *LikeRepo) AddLike(ctx context.Context, filmID, userID uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO likes (film_id, user_id) VALUES (?,?)", filmID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := insertEventTx(ctx, tx, userID, filmID, model.EventLike, model.OperationAdd); err != nil {
			return false, err
		}
	}
	return n == 1, tx.Commit()
}

// RemoveLike deletes a like edge if present. Removing a like that
// does not exist is a no-op and appends no event.
func (r *LikeRepo) RemoveLike(ctx context.Context, filmID, userID uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM likes WHERE film_id=? AND user_id=?", filmID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := insertEventTx(ctx, tx, userID, filmID, model.EventLike, model.OperationRemove); err != nil {
			return false, err
		}
	}
	return n == 1, tx.Commit()
}

// FilmIDsLikedBy returns the ids of all films the user liked.
func (r *LikeRepo) FilmIDsLikedBy(ctx context.Context, userID uint64) ([]uint64, error) {
	return r.ids(ctx, "SELECT film_id FROM likes WHERE user_id=? ORDER BY film_id", userID)
}

// UserIDsWhoLiked returns the ids of all users who liked the film.
func (r *LikeRepo) UserIDsWhoLiked(ctx context.Context, filmID uint64) ([]uint64, error) {
	return r.ids(ctx, "SELECT user_id FROM likes WHERE film_id=? ORDER BY user_id", filmID)
}

// LikeCount returns the number of users who liked the film.
func (r *LikeRepo) LikeCount(ctx context.Context, filmID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM likes WHERE film_id=?", filmID).Scan(&n)
	return n, err
}

// Popular returns up to count films ranked by like count descending,
// film id ascending on ties so results are stable across calls. A
// zero genreID or year disables that filter.
func (r *LikeRepo) Popular(ctx context.Context, count int, genreID uint64, year int) ([]model.Film, error) {
	where := []string{}
	args := []any{}
	if genreID > 0 {
		where = append(where, "EXISTS (SELECT 1 FROM film_genres fg WHERE fg.film_id = f.id AND fg.genre_id = ?)")
		args = append(args, genreID)
	}
	if year > 0 {
		where = append(where, "YEAR(f.release_date) = ?")
		args = append(args, year)
	}
	q := filmSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY likes DESC, f.id ASC LIMIT ?"
	args = append(args, count)
	return r.films.queryFilms(ctx, q, args...)
}

func (r *LikeRepo) ids(ctx context.Context, query string, arg uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
