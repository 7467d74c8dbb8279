package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/filmorate/internal/model"
)

// FilmSearchQuery defines the free-text search parameters. By lists
// the fields to match against; valid values are "title", "director"
// or both (comma separated, any order).
type FilmSearchQuery struct {
	Query string
	By    []string
}

// Search performs a case-insensitive substring match over film title
// and/or director name. Results come back most liked first so the
// search surface agrees with the popularity ranking.
func (r *FilmRepo) Search(ctx context.Context, q FilmSearchQuery) ([]model.Film, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(q.Query)) + "%"

	fields := []string{}
	args := []any{}
	for _, by := range q.By {
		switch strings.ToLower(strings.TrimSpace(by)) {
		case "title":
			fields = append(fields, "LOWER(f.title) LIKE ?")
			args = append(args, needle)
		case "director":
			fields = append(fields, "LOWER(d.name) LIKE ?")
			args = append(args, needle)
		}
	}
	if len(fields) == 0 {
		return []model.Film{}, nil
	}

	return r.queryFilms(ctx,
		filmSelect+" WHERE "+strings.Join(fields, " OR ")+" ORDER BY likes DESC, f.id",
		args...)
}
