package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iliyamo/filmorate/internal/model"
)

// DirectorService manages the director directory referenced by films.
type DirectorService struct {
	dirs DirectorStore
}

func NewDirectorService(dirs DirectorStore) *DirectorService {
	return &DirectorService{dirs: dirs}
}

// Directors returns all directors.
func (s *DirectorService) Directors(ctx context.Context) ([]model.Director, error) {
	return s.dirs.List(ctx)
}

// DirectorByID returns one director or repository.ErrNotFound.
func (s *DirectorService) DirectorByID(ctx context.Context, id uint64) (model.Director, error) {
	return s.dirs.ByID(ctx, id)
}

// AddDirector stores a new director.
func (s *DirectorService) AddDirector(ctx context.Context, name string) (model.Director, error) {
	if strings.TrimSpace(name) == "" {
		return model.Director{}, fmt.Errorf("%w: director name must not be blank", ErrInvalidArgument)
	}
	id, err := s.dirs.Create(ctx, name)
	if err != nil {
		return model.Director{}, err
	}
	slog.Info("director added", "director_id", id)
	return s.dirs.ByID(ctx, id)
}

// UpdateDirector renames an existing director.
func (s *DirectorService) UpdateDirector(ctx context.Context, d model.Director) (model.Director, error) {
	if strings.TrimSpace(d.Name) == "" {
		return model.Director{}, fmt.Errorf("%w: director name must not be blank", ErrInvalidArgument)
	}
	if _, err := s.dirs.ByID(ctx, d.ID); err != nil {
		return model.Director{}, err
	}
	if err := s.dirs.Update(ctx, d); err != nil {
		return model.Director{}, err
	}
	return s.dirs.ByID(ctx, d.ID)
}

// DeleteDirector removes a director; attributed films keep their
// rows with the reference cleared.
func (s *DirectorService) DeleteDirector(ctx context.Context, id uint64) error {
	if err := s.dirs.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("director deleted", "director_id", id)
	return nil
}
