package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/repository"
)

func validFilm() model.Film {
	return model.Film{
		Title:       "Alien",
		Description: "In space no one can hear you scream.",
		ReleaseDate: time.Date(1979, time.May, 25, 0, 0, 0, 0, time.UTC),
		Duration:    117,
		Mpa:         model.Mpa{ID: 4},
	}
}

func TestAddFilmValidation(t *testing.T) {
	_, fs := newServices(newMemStore(), nil)
	ctx := context.Background()

	t.Run("blank title", func(t *testing.T) {
		f := validFilm()
		f.Title = "   "
		_, err := fs.AddFilm(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("description over 200 characters", func(t *testing.T) {
		f := validFilm()
		f.Description = strings.Repeat("x", 201)
		_, err := fs.AddFilm(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("description of exactly 200 characters passes", func(t *testing.T) {
		f := validFilm()
		f.Description = strings.Repeat("x", 200)
		_, err := fs.AddFilm(ctx, f)
		assert.NoError(t, err)
	})

	t.Run("release before first film date", func(t *testing.T) {
		f := validFilm()
		f.ReleaseDate = time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC)
		_, err := fs.AddFilm(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("release on first film date passes", func(t *testing.T) {
		f := validFilm()
		f.ReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)
		_, err := fs.AddFilm(ctx, f)
		assert.NoError(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		f := validFilm()
		f.Duration = -1
		_, err := fs.AddFilm(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("valid film gets an id and zero likes", func(t *testing.T) {
		got, err := fs.AddFilm(ctx, validFilm())
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		assert.Equal(t, "Alien", got.Title)
		assert.Zero(t, got.Likes)
	})
}

func TestUpdateFilmUnknownID(t *testing.T) {
	_, fs := newServices(newMemStore(), nil)
	f := validFilm()
	f.ID = 42
	_, err := fs.UpdateFilm(context.Background(), f)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddLikeIdempotent(t *testing.T) {
	m := newMemStore()
	pub := &recordingPublisher{}
	_, fs := newServices(m, pub)
	ctx := context.Background()

	alice := seedUser(m, "alice@example.com", "alice")
	film := seedFilm(m, "Heat", 1995)

	got, err := fs.AddLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)

	// Second like from the same user changes nothing.
	got, err = fs.AddLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)

	require.Len(t, m.events, 1)
	assert.Equal(t, model.EventLike, m.events[0].EventType)
	assert.Equal(t, model.OperationAdd, m.events[0].Operation)
	assert.Len(t, pub.published, 1)
}

func TestRemoveLikeIdempotent(t *testing.T) {
	m := newMemStore()
	pub := &recordingPublisher{}
	_, fs := newServices(m, pub)
	ctx := context.Background()

	alice := seedUser(m, "alice@example.com", "alice")
	film := seedFilm(m, "Heat", 1995)

	_, err := fs.AddLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)

	got, err := fs.RemoveLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)

	// Removing again is a no-op: no extra event, no extra message.
	got, err = fs.RemoveLike(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)

	require.Len(t, m.events, 2)
	assert.Equal(t, model.OperationAdd, m.events[0].Operation)
	assert.Equal(t, model.OperationRemove, m.events[1].Operation)
	assert.Len(t, pub.published, 2)

	liked, err := m.asLikes().FilmIDsLikedBy(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestAddLikeUnknownEntities(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	alice := seedUser(m, "alice@example.com", "alice")
	film := seedFilm(m, "Heat", 1995)

	_, err := fs.AddLike(ctx, film.ID, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = fs.AddLike(ctx, 999, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPopularFilms(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	comedy := m.genres[0]
	drama := m.genres[1]

	f1 := seedFilm(m, "First", 2000, withGenre(comedy))
	f2 := seedFilm(m, "Second", 2001, withGenre(drama))
	f3 := seedFilm(m, "Third", 2001, withGenre(comedy))

	users := make([]model.User, 3)
	for i := range users {
		users[i] = seedUser(m, "u"+string(rune('a'+i))+"@example.com", "user"+string(rune('a'+i)))
	}
	// f2 gets 3 likes, f3 gets 2, f1 gets 0.
	for _, u := range users {
		_, err := fs.AddLike(ctx, f2.ID, u.ID)
		require.NoError(t, err)
	}
	for _, u := range users[:2] {
		_, err := fs.AddLike(ctx, f3.ID, u.ID)
		require.NoError(t, err)
	}

	t.Run("ranked by like count descending", func(t *testing.T) {
		got, err := fs.PopularFilms(ctx, 10, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []uint64{f2.ID, f3.ID, f1.ID}, []uint64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("count caps the result", func(t *testing.T) {
		got, err := fs.PopularFilms(ctx, 1, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, f2.ID, got[0].ID)
	})

	t.Run("genre filter", func(t *testing.T) {
		got, err := fs.PopularFilms(ctx, 10, int(comedy.ID), 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, f3.ID, got[0].ID)
		assert.Equal(t, f1.ID, got[1].ID)
	})

	t.Run("year filter", func(t *testing.T) {
		got, err := fs.PopularFilms(ctx, 10, 0, 2001)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, f2.ID, got[0].ID)
		assert.Equal(t, f3.ID, got[1].ID)
	})

	t.Run("combined filters", func(t *testing.T) {
		got, err := fs.PopularFilms(ctx, 10, int(comedy.ID), 2001)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, f3.ID, got[0].ID)
	})

	t.Run("non-positive count rejected", func(t *testing.T) {
		_, err := fs.PopularFilms(ctx, 0, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative filters rejected", func(t *testing.T) {
		_, err := fs.PopularFilms(ctx, 10, -1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = fs.PopularFilms(ctx, 10, 0, -3)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestFilmsByDirector(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	id, err := m.asDirectors().Create(ctx, "Akira Kurosawa")
	require.NoError(t, err)
	kurosawa := model.Director{ID: id, Name: "Akira Kurosawa"}

	rashomon := seedFilm(m, "Rashomon", 1950, withDirector(kurosawa))
	hidden := seedFilm(m, "The Hidden Fortress", 1958, withDirector(kurosawa))
	ikiru := seedFilm(m, "Ikiru", 1952, withDirector(kurosawa))

	alice := seedUser(m, "alice@example.com", "alice")
	bob := seedUser(m, "bob@example.com", "bob")
	for _, u := range []model.User{alice, bob} {
		_, err := fs.AddLike(ctx, ikiru.ID, u.ID)
		require.NoError(t, err)
	}
	_, err = fs.AddLike(ctx, rashomon.ID, alice.ID)
	require.NoError(t, err)

	t.Run("sorted by likes", func(t *testing.T) {
		got, err := fs.FilmsByDirector(ctx, kurosawa.ID, "likes")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []uint64{ikiru.ID, rashomon.ID, hidden.ID},
			[]uint64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("sorted by year descending", func(t *testing.T) {
		got, err := fs.FilmsByDirector(ctx, kurosawa.ID, "year")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int{1958, 1952, 1950}, []int{
			got[0].ReleaseDate.Year(), got[1].ReleaseDate.Year(), got[2].ReleaseDate.Year(),
		})
	})

	t.Run("unsupported sort key rejected", func(t *testing.T) {
		_, err := fs.FilmsByDirector(ctx, kurosawa.ID, "title")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown director", func(t *testing.T) {
		_, err := fs.FilmsByDirector(ctx, 999, "likes")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCommonFilms(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	alice := seedUser(m, "alice@example.com", "alice")
	bob := seedUser(m, "bob@example.com", "bob")
	carol := seedUser(m, "carol@example.com", "carol")

	shared1 := seedFilm(m, "Shared One", 2000)
	shared2 := seedFilm(m, "Shared Two", 2001)
	onlyAlice := seedFilm(m, "Only Alice", 2002)

	for _, like := range []struct{ film, user uint64 }{
		{shared1.ID, alice.ID}, {shared1.ID, bob.ID},
		{shared2.ID, alice.ID}, {shared2.ID, bob.ID}, {shared2.ID, carol.ID},
		{onlyAlice.ID, alice.ID},
	} {
		_, err := fs.AddLike(ctx, like.film, like.user)
		require.NoError(t, err)
	}

	t.Run("intersection most liked first", func(t *testing.T) {
		got, err := fs.CommonFilms(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, shared2.ID, got[0].ID) // 3 likes
		assert.Equal(t, shared1.ID, got[1].ID) // 2 likes
	})

	t.Run("unknown user yields empty list", func(t *testing.T) {
		got, err := fs.CommonFilms(ctx, alice.ID, 999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSearch(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	id, err := m.asDirectors().Create(ctx, "Ridley Scott")
	require.NoError(t, err)
	scott := model.Director{ID: id, Name: "Ridley Scott"}

	alien := seedFilm(m, "Alien", 1979, withDirector(scott))
	seedFilm(m, "Heat", 1995)

	t.Run("by title", func(t *testing.T) {
		got, err := fs.Search(ctx, "ali", "title")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, alien.ID, got[0].ID)
	})

	t.Run("by director", func(t *testing.T) {
		got, err := fs.Search(ctx, "scott", "director")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, alien.ID, got[0].ID)
	})

	t.Run("title match does not leak into director search", func(t *testing.T) {
		got, err := fs.Search(ctx, "heat", "director")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("both fields", func(t *testing.T) {
		got, err := fs.Search(ctx, "ridley", "title,director")
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("blank query yields empty list", func(t *testing.T) {
		got, err := fs.Search(ctx, "   ", "title")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unsupported field rejected", func(t *testing.T) {
		_, err := fs.Search(ctx, "alien", "genre")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestGenreAndMpaLookups(t *testing.T) {
	m := newMemStore()
	_, fs := newServices(m, nil)
	ctx := context.Background()

	genres, err := fs.Genres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 3)

	g, err := fs.GenreByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Drama", g.Name)

	_, err = fs.GenreByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ratings, err := fs.MpaRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, "G", ratings[0].Name)
	assert.Equal(t, "NC-17", ratings[4].Name)

	r, err := fs.MpaByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", r.Name)

	_, err = fs.MpaByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
