package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/filmorate/internal/model"
)

type DirectorRepo struct{ DB *sql.DB }

func NewDirectorRepo(db *sql.DB) *DirectorRepo { return &DirectorRepo{DB: db} }

// List returns all directors ordered by id.
func (r *DirectorRepo) List(ctx context.Context) ([]model.Director, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM directors ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Director, 0)
	for rows.Next() {
		var d model.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ByID fetches a director by id.
func (r *DirectorRepo) ByID(ctx context.Context, id uint64) (model.Director, error) {
	var d model.Director
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM directors WHERE id=? LIMIT 1", id).Scan(&d.ID, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Director{}, ErrNotFound
	}
	return d, err
}

// Create inserts a director and returns its ID.
func (r *DirectorRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO directors (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update renames a director.
func (r *DirectorRepo) Update(ctx context.Context, d model.Director) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE directors SET name=? WHERE id=?", d.Name, d.ID)
	return err
}

// Delete removes a director. Films keep their rows; the director
// reference is set to NULL at the schema level.
func (r *DirectorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM directors WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
