package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/filmorate/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, login, name, birthday, COALESCE(password_hash,''), created_at, updated_at"

// Create inserts a user and returns its ID. A blank password hash is
// stored as NULL so plain CRUD users carry no credentials.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, login, name, birthday, password_hash) VALUES (?,?,?,?,NULLIF(?,''))",
		strings.ToLower(strings.TrimSpace(u.Email)), u.Login, u.Name, u.Birthday, u.PasswordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites the mutable profile columns. Callers verify
// existence first; MySQL reports zero affected rows for no-op
// updates, so the affected count is not an existence signal.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, login=?, name=?, birthday=? WHERE id=?",
		strings.ToLower(strings.TrimSpace(u.Email)), u.Login, u.Name, u.Birthday, u.ID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

// Delete removes a user by id. Likes, friend edges and events owned
// by the user cascade at the schema level.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

// ByID fetches a user by id.
func (r *UserRepo) ByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ByEmail fetches a user by normalized email; used by the auth login flow.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
