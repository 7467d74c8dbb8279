package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/repository"
)

// firstFilmDate is the release date of the first motion picture.
// No film in the catalogue may be released before it.
var firstFilmDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const maxDescriptionLen = 200

// FilmService owns the film side of the domain: catalogue CRUD with
// validation, like/unlike mutations, popularity rankings, director
// listings, common films and search, plus the genre and MPA lookups.
type FilmService struct {
	films  FilmStore
	users  UserStore
	likes  LikeStore
	genres GenreStore
	mpa    MpaStore
	dirs   DirectorStore
	pub    ActivityPublisher
}

func NewFilmService(films FilmStore, users UserStore, likes LikeStore,
	genres GenreStore, mpa MpaStore, dirs DirectorStore, pub ActivityPublisher) *FilmService {
	return &FilmService{films: films, users: users, likes: likes,
		genres: genres, mpa: mpa, dirs: dirs, pub: pub}
}

// Films returns the whole catalogue.
func (s *FilmService) Films(ctx context.Context) ([]model.Film, error) {
	return s.films.List(ctx)
}

// FilmByID returns one film or repository.ErrNotFound.
func (s *FilmService) FilmByID(ctx context.Context, id uint64) (model.Film, error) {
	return s.films.ByID(ctx, id)
}

// AddFilm validates and stores a new film, returning it with the
// database-assigned id and joined metadata.
func (s *FilmService) AddFilm(ctx context.Context, f model.Film) (model.Film, error) {
	if err := validateFilm(f); err != nil {
		return model.Film{}, err
	}
	id, err := s.films.Create(ctx, f)
	if err != nil {
		return model.Film{}, err
	}
	slog.Info("film added", "film_id", id)
	return s.films.ByID(ctx, id)
}

// UpdateFilm validates and rewrites an existing film.
func (s *FilmService) UpdateFilm(ctx context.Context, f model.Film) (model.Film, error) {
	if err := validateFilm(f); err != nil {
		return model.Film{}, err
	}
	if _, err := s.films.ByID(ctx, f.ID); err != nil {
		return model.Film{}, err
	}
	if err := s.films.Update(ctx, f); err != nil {
		return model.Film{}, err
	}
	slog.Info("film updated", "film_id", f.ID)
	return s.films.ByID(ctx, f.ID)
}

// DeleteFilm removes a film from the catalogue.
func (s *FilmService) DeleteFilm(ctx context.Context, id uint64) error {
	if err := s.films.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("film deleted", "film_id", id)
	return nil
}

// AddLike records that a user liked a film. Both ids must reference
// existing entities; re-liking is an idempotent no-op. The updated
// film is returned either way.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint64) (model.Film, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return model.Film{}, err
	}
	if _, err := s.films.ByID(ctx, filmID); err != nil {
		return model.Film{}, err
	}
	created, err := s.likes.AddLike(ctx, filmID, userID)
	if err != nil {
		return model.Film{}, err
	}
	if created {
		slog.Info("like added", "film_id", filmID, "user_id", userID)
		publishActivity(ctx, s.pub, userID, filmID, model.EventLike, model.OperationAdd)
	}
	return s.films.ByID(ctx, filmID)
}

// RemoveLike deletes a user's like from a film. Unliking a film the
// user never liked is an idempotent no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint64) (model.Film, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return model.Film{}, err
	}
	if _, err := s.films.ByID(ctx, filmID); err != nil {
		return model.Film{}, err
	}
	removed, err := s.likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return model.Film{}, err
	}
	if removed {
		slog.Info("like removed", "film_id", filmID, "user_id", userID)
		publishActivity(ctx, s.pub, userID, filmID, model.EventLike, model.OperationRemove)
	}
	return s.films.ByID(ctx, filmID)
}

// PopularFilms returns up to count films ranked by like count
// descending. genreID and year are optional filters; zero disables
// them, negative values are rejected.
func (s *FilmService) PopularFilms(ctx context.Context, count, genreID, year int) ([]model.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrInvalidArgument)
	}
	if genreID < 0 || year < 0 {
		return nil, fmt.Errorf("%w: genreId and year must not be negative", ErrInvalidArgument)
	}
	return s.likes.Popular(ctx, count, uint64(genreID), year)
}

// FilmsByDirector returns a director's films sorted by the requested
// key: "likes" (like count descending) or "year" (release year
// descending). Any other key is rejected.
func (s *FilmService) FilmsByDirector(ctx context.Context, directorID uint64, sortBy string) ([]model.Film, error) {
	if _, err := s.dirs.ByID(ctx, directorID); err != nil {
		return nil, err
	}
	films, err := s.films.ByDirector(ctx, directorID)
	if err != nil {
		return nil, err
	}
	switch sortBy {
	case "likes":
		sort.Slice(films, func(i, j int) bool {
			if films[i].Likes != films[j].Likes {
				return films[i].Likes > films[j].Likes
			}
			return films[i].ID < films[j].ID
		})
	case "year":
		sort.Slice(films, func(i, j int) bool {
			yi, yj := films[i].ReleaseDate.Year(), films[j].ReleaseDate.Year()
			if yi != yj {
				return yi > yj
			}
			return films[i].ID < films[j].ID
		})
	default:
		return nil, fmt.Errorf("%w: supports only year or likes", ErrInvalidArgument)
	}
	return films, nil
}

// CommonFilms returns the films liked by both users, most liked
// first. An unknown user yields an empty list rather than an error;
// callers are expected to have validated existence already.
func (s *FilmService) CommonFilms(ctx context.Context, userID, friendID uint64) ([]model.Film, error) {
	for _, id := range []uint64{userID, friendID} {
		if _, err := s.users.ByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []model.Film{}, nil
			}
			return nil, err
		}
	}
	films, err := s.films.CommonFilms(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	sort.Slice(films, func(i, j int) bool {
		if films[i].Likes != films[j].Likes {
			return films[i].Likes > films[j].Likes
		}
		return films[i].ID < films[j].ID
	})
	return films, nil
}

// Search matches films by case-insensitive substring over title
// and/or director name. by accepts "title", "director" or both comma
// separated; anything else is rejected.
func (s *FilmService) Search(ctx context.Context, query, by string) ([]model.Film, error) {
	if strings.TrimSpace(query) == "" {
		return []model.Film{}, nil
	}
	if by == "" {
		by = "title"
	}
	fields := strings.Split(by, ",")
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "title", "director":
		default:
			return nil, fmt.Errorf("%w: search supports only title or director", ErrInvalidArgument)
		}
	}
	return s.films.Search(ctx, repository.FilmSearchQuery{Query: query, By: fields})
}

// Genres returns all genres.
func (s *FilmService) Genres(ctx context.Context) ([]model.Genre, error) {
	return s.genres.List(ctx)
}

// GenreByID returns one genre or repository.ErrNotFound.
func (s *FilmService) GenreByID(ctx context.Context, id uint64) (model.Genre, error) {
	return s.genres.ByID(ctx, id)
}

// MpaRatings returns the fixed MPA enumeration.
func (s *FilmService) MpaRatings(ctx context.Context) ([]model.Mpa, error) {
	return s.mpa.List(ctx)
}

// MpaByID returns one MPA rating or repository.ErrNotFound.
func (s *FilmService) MpaByID(ctx context.Context, id uint64) (model.Mpa, error) {
	return s.mpa.ByID(ctx, id)
}

func validateFilm(f model.Film) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrInvalidArgument)
	}
	if len([]rune(f.Description)) > maxDescriptionLen {
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidArgument, maxDescriptionLen)
	}
	if f.ReleaseDate.Before(firstFilmDate) {
		return fmt.Errorf("%w: release date precedes %s", ErrInvalidArgument, firstFilmDate.Format("2006-01-02"))
	}
	if f.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidArgument)
	}
	return nil
}
