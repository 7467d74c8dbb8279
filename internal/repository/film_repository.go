package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/filmorate/internal/model"
)

// FilmRepo provides data access to the films table and its joined
// metadata (MPA rating, optional director, genre set, derived like
// count). The like count is always computed from the likes table.
type FilmRepo struct{ DB *sql.DB }

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{DB: db} }

// filmSelect is the shared projection for every film query. The like
// count is a correlated subquery so list and detail views agree.
const filmSelect = `SELECT
		f.id, f.title, f.description, f.release_date, f.duration,
		m.id, m.name,
		d.id, d.name,
		(SELECT COUNT(*) FROM likes l WHERE l.film_id = f.id) AS likes
	FROM films f
	JOIN mpa_ratings m ON m.id = f.mpa_id
	LEFT JOIN directors d ON d.id = f.director_id`

// List returns all films ordered by id, with genres attached.
func (r *FilmRepo) List(ctx context.Context) ([]model.Film, error) {
	return r.queryFilms(ctx, filmSelect+" ORDER BY f.id")
}

// ByID fetches a single film with its genres.
func (r *FilmRepo) ByID(ctx context.Context, id uint64) (model.Film, error) {
	films, err := r.queryFilms(ctx, filmSelect+" WHERE f.id = ?", id)
	if err != nil {
		return model.Film{}, err
	}
	if len(films) == 0 {
		return model.Film{}, ErrNotFound
	}
	return films[0], nil
}

// ByIDs fetches the given films ordered by id. Unknown ids are
// silently skipped; the recommendation engine relies on that.
func (r *FilmRepo) ByIDs(ctx context.Context, ids []uint64) ([]model.Film, error) {
	if len(ids) == 0 {
		return []model.Film{}, nil
	}
	ph := strings.Repeat("?,", len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryFilms(ctx,
		filmSelect+" WHERE f.id IN ("+ph[:len(ph)-1]+") ORDER BY f.id", args...)
}

// ByDirector returns all films attributed to the given director.
func (r *FilmRepo) ByDirector(ctx context.Context, directorID uint64) ([]model.Film, error) {
	return r.queryFilms(ctx, filmSelect+" WHERE f.director_id = ? ORDER BY f.id", directorID)
}

// CommonFilms returns films liked by both users, most liked first.
func (r *FilmRepo) CommonFilms(ctx context.Context, userID, friendID uint64) ([]model.Film, error) {
	return r.queryFilms(ctx, filmSelect+`
		JOIN likes la ON la.film_id = f.id AND la.user_id = ?
		JOIN likes lb ON lb.film_id = f.id AND lb.user_id = ?
		ORDER BY likes DESC, f.id`, userID, friendID)
}

// Create inserts a film and its genre set in one transaction and
// returns the new id.
func (r *FilmRepo) Create(ctx context.Context, f model.Film) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO films (title, description, release_date, duration, mpa_id, director_id) VALUES (?,?,?,?,?,?)",
		f.Title, f.Description, f.ReleaseDate, f.Duration, f.Mpa.ID, directorArg(f.Director))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := insertGenresTx(ctx, tx, uint64(id), f.Genres); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a film row and replaces its genre set in one
// transaction. Callers verify existence first.
func (r *FilmRepo) Update(ctx context.Context, f model.Film) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE films SET title=?, description=?, release_date=?, duration=?, mpa_id=?, director_id=? WHERE id=?",
		f.Title, f.Description, f.ReleaseDate, f.Duration, f.Mpa.ID, directorArg(f.Director), f.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM film_genres WHERE film_id=?", f.ID); err != nil {
		return err
	}
	if err := insertGenresTx(ctx, tx, f.ID, f.Genres); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a film by id. Genre links and likes cascade at the
// schema level.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM films WHERE id=?", id)
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

func directorArg(d *model.Director) any {
	if d == nil {
		return nil
	}
	return d.ID
}

func insertGenresTx(ctx context.Context, tx *sql.Tx, filmID uint64, genres []model.Genre) error {
	seen := map[uint64]bool{}
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO film_genres (film_id, genre_id) VALUES (?,?)", filmID, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// queryFilms runs a film projection query, scans the rows and
// attaches the genre sets with a single follow-up query.
func (r *FilmRepo) queryFilms(ctx context.Context, query string, args ...any) ([]model.Film, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	films := make([]model.Film, 0)
	for rows.Next() {
		var (
			f       model.Film
			dirID   sql.NullInt64
			dirName sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.ReleaseDate, &f.Duration,
			&f.Mpa.ID, &f.Mpa.Name, &dirID, &dirName, &f.Likes); err != nil {
			return nil, err
		}
		if dirID.Valid {
			f.Director = &model.Director{ID: uint64(dirID.Int64), Name: dirName.String}
		}
		f.Genres = []model.Genre{}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *FilmRepo) attachGenres(ctx context.Context, films []model.Film) error {
	if len(films) == 0 {
		return nil
	}
	idx := make(map[uint64]int, len(films))
	args := make([]any, len(films))
	ph := make([]string, len(films))
	for i := range films {
		idx[films[i].ID] = i
		args[i] = films[i].ID
		ph[i] = "?"
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT fg.film_id, g.id, g.name FROM film_genres fg
		 JOIN genres g ON g.id = fg.genre_id
		 WHERE fg.film_id IN (`+strings.Join(ph, ",")+`) ORDER BY g.id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var filmID uint64
		var g model.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return err
		}
		if i, ok := idx[filmID]; ok {
			films[i].Genres = append(films[i].Genres, g)
		}
	}
	return rows.Err()
}
