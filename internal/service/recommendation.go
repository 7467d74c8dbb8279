package service

import (
	"context"
	"sort"

	"github.com/iliyamo/filmorate/internal/model"
)

// Recommendations proposes films the user has not liked, inferred
// from the users whose taste overlaps theirs the most.
//
// The similarity signal is plain co-occurrence: overlap(u, v) is the
// number of films both users liked. All users tied at the maximum
// overlap form the neighbour set; the result is the union of their
// liked films minus the target user's own. Users sharing zero films
// never enter the neighbour map because candidates are discovered
// through the inverted film->users index rather than by scanning the
// whole user directory.
func (s *UserService) Recommendations(ctx context.Context, userID uint64) ([]model.Film, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, err
	}

	liked, err := s.likes.FilmIDsLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return []model.Film{}, nil
	}
	likedSet := make(map[uint64]bool, len(liked))
	for _, f := range liked {
		likedSet[f] = true
	}

	overlap := map[uint64]int{}
	for _, filmID := range liked {
		fans, err := s.likes.UserIDsWhoLiked(ctx, filmID)
		if err != nil {
			return nil, err
		}
		for _, v := range fans {
			if v != userID {
				overlap[v]++
			}
		}
	}
	if len(overlap) == 0 {
		return []model.Film{}, nil
	}

	max := 0
	for _, n := range overlap {
		if n > max {
			max = n
		}
	}

	candidates := map[uint64]bool{}
	for v, n := range overlap {
		if n != max {
			continue
		}
		theirs, err := s.likes.FilmIDsLikedBy(ctx, v)
		if err != nil {
			return nil, err
		}
		for _, f := range theirs {
			if !likedSet[f] {
				candidates[f] = true
			}
		}
	}
	if len(candidates) == 0 {
		return []model.Film{}, nil
	}

	ids := make([]uint64, 0, len(candidates))
	for f := range candidates {
		ids = append(ids, f)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return s.films.ByIDs(ctx, ids)
}
