package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/filmorate/internal/model"
)

// MpaRepo reads the fixed MPA rating enumeration. The table is
// seeded once (G, PG, PG-13, R, NC-17) and never written at runtime.
type MpaRepo struct{ DB *sql.DB }

func NewMpaRepo(db *sql.DB) *MpaRepo { return &MpaRepo{DB: db} }

// List returns all MPA ratings ordered by id.
func (r *MpaRepo) List(ctx context.Context) ([]model.Mpa, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM mpa_ratings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Mpa, 0)
	for rows.Next() {
		var m model.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ByID fetches an MPA rating by id.
func (r *MpaRepo) ByID(ctx context.Context, id uint64) (model.Mpa, error) {
	var m model.Mpa
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM mpa_ratings WHERE id=? LIMIT 1", id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Mpa{}, ErrNotFound
	}
	return m, err
}
