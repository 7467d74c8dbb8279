package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/filmorate/internal/model"
)

type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// List returns all genres ordered by id.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ByID fetches a genre by id.
func (r *GenreRepo) ByID(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM genres WHERE id=? LIMIT 1", id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Genre{}, ErrNotFound
	}
	return g, err
}
