package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/filmorate/internal/model"
	"github.com/iliyamo/filmorate/internal/queue"
	"github.com/iliyamo/filmorate/internal/repository"
)

// memStore is an in-memory implementation of every store interface.
// Like the SQL repositories, AddLike/RemoveLike/AddFriend/RemoveFriend
// append the matching event in the same step as the edge change, so
// the edge sets and the event log stay consistent.
type memStore struct {
	users     map[uint64]model.User
	films     map[uint64]model.Film
	likes     map[uint64]map[uint64]bool // filmID -> set of userIDs
	friends   map[uint64]map[uint64]bool // ownerID -> set of friendIDs
	genres    []model.Genre
	mpa       []model.Mpa
	directors map[uint64]model.Director
	events    []model.Event

	nextUser     uint64
	nextFilm     uint64
	nextDirector uint64
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uint64]model.User{},
		films:     map[uint64]model.Film{},
		likes:     map[uint64]map[uint64]bool{},
		friends:   map[uint64]map[uint64]bool{},
		directors: map[uint64]model.Director{},
		genres: []model.Genre{
			{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}, {ID: 3, Name: "Cartoon"},
		},
		mpa: []model.Mpa{
			{ID: 1, Name: "G"}, {ID: 2, Name: "PG"}, {ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"}, {ID: 5, Name: "NC-17"},
		},
	}
}

func (m *memStore) appendEvent(userID, entityID uint64, et model.EventType, op model.Operation) {
	m.events = append(m.events, model.Event{
		ID:        uint64(len(m.events) + 1),
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		EntityID:  entityID,
		EventType: et,
		Operation: op,
	})
}

// --- UserStore ---

func (m *memStore) List(ctx context.Context) ([]model.User, error) {
	ids := make([]uint64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *memStore) ByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) ByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) Create(ctx context.Context, u model.User) (uint64, error) {
	for _, other := range m.users {
		if other.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	m.nextUser++
	u.ID = m.nextUser
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memStore) Update(ctx context.Context, u model.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	for filmID := range m.likes {
		delete(m.likes[filmID], id)
	}
	delete(m.friends, id)
	for owner := range m.friends {
		delete(m.friends[owner], id)
	}
	return nil
}

// --- FilmStore (wrapped so List/ByID do not collide with UserStore) ---

type filmStore struct{ *memStore }

func (m *memStore) asFilms() *filmStore { return &filmStore{m} }

func (f *filmStore) withLikes(film model.Film) model.Film {
	film.Likes = len(f.likes[film.ID])
	return film
}

func (f *filmStore) List(ctx context.Context) ([]model.Film, error) {
	ids := make([]uint64, 0, len(f.films))
	for id := range f.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.withLikes(f.films[id]))
	}
	return out, nil
}

func (f *filmStore) ByID(ctx context.Context, id uint64) (model.Film, error) {
	film, ok := f.films[id]
	if !ok {
		return model.Film{}, repository.ErrNotFound
	}
	return f.withLikes(film), nil
}

func (f *filmStore) ByIDs(ctx context.Context, ids []uint64) ([]model.Film, error) {
	out := []model.Film{}
	for _, id := range ids {
		if film, ok := f.films[id]; ok {
			out = append(out, f.withLikes(film))
		}
	}
	return out, nil
}

func (f *filmStore) ByDirector(ctx context.Context, directorID uint64) ([]model.Film, error) {
	all, _ := f.List(ctx)
	out := []model.Film{}
	for _, film := range all {
		if film.Director != nil && film.Director.ID == directorID {
			out = append(out, film)
		}
	}
	return out, nil
}

func (f *filmStore) CommonFilms(ctx context.Context, userID, friendID uint64) ([]model.Film, error) {
	all, _ := f.List(ctx)
	out := []model.Film{}
	for _, film := range all {
		if f.likes[film.ID][userID] && f.likes[film.ID][friendID] {
			out = append(out, film)
		}
	}
	return out, nil
}

func (f *filmStore) Search(ctx context.Context, q repository.FilmSearchQuery) ([]model.Film, error) {
	needle := strings.ToLower(q.Query)
	byTitle, byDirector := false, false
	for _, field := range q.By {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		}
	}
	all, _ := f.List(ctx)
	out := []model.Film{}
	for _, film := range all {
		if byTitle && strings.Contains(strings.ToLower(film.Title), needle) {
			out = append(out, film)
			continue
		}
		if byDirector && film.Director != nil &&
			strings.Contains(strings.ToLower(film.Director.Name), needle) {
			out = append(out, film)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Likes != out[j].Likes {
			return out[i].Likes > out[j].Likes
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *filmStore) Create(ctx context.Context, film model.Film) (uint64, error) {
	f.nextFilm++
	film.ID = f.nextFilm
	f.films[film.ID] = film
	return film.ID, nil
}

func (f *filmStore) Update(ctx context.Context, film model.Film) error {
	if _, ok := f.films[film.ID]; !ok {
		return repository.ErrNotFound
	}
	f.films[film.ID] = film
	return nil
}

func (f *filmStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.films[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.films, id)
	delete(f.likes, id)
	return nil
}

// --- LikeStore ---

type likeStore struct{ *memStore }

func (m *memStore) asLikes() *likeStore { return &likeStore{m} }

func (l *likeStore) AddLike(ctx context.Context, filmID, userID uint64) (bool, error) {
	if l.likes[filmID] == nil {
		l.likes[filmID] = map[uint64]bool{}
	}
	if l.likes[filmID][userID] {
		return false, nil
	}
	l.likes[filmID][userID] = true
	l.appendEvent(userID, filmID, model.EventLike, model.OperationAdd)
	return true, nil
}

func (l *likeStore) RemoveLike(ctx context.Context, filmID, userID uint64) (bool, error) {
	if !l.likes[filmID][userID] {
		return false, nil
	}
	delete(l.likes[filmID], userID)
	l.appendEvent(userID, filmID, model.EventLike, model.OperationRemove)
	return true, nil
}

func (l *likeStore) FilmIDsLikedBy(ctx context.Context, userID uint64) ([]uint64, error) {
	out := []uint64{}
	for filmID, fans := range l.likes {
		if fans[userID] {
			out = append(out, filmID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (l *likeStore) UserIDsWhoLiked(ctx context.Context, filmID uint64) ([]uint64, error) {
	out := []uint64{}
	for userID := range l.likes[filmID] {
		out = append(out, userID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (l *likeStore) LikeCount(ctx context.Context, filmID uint64) (int, error) {
	return len(l.likes[filmID]), nil
}

func (l *likeStore) Popular(ctx context.Context, count int, genreID uint64, year int) ([]model.Film, error) {
	all, _ := l.asFilms().List(ctx)
	out := []model.Film{}
	for _, film := range all {
		if genreID != 0 && !hasGenre(film, genreID) {
			continue
		}
		if year != 0 && film.ReleaseDate.Year() != year {
			continue
		}
		out = append(out, film)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Likes != out[j].Likes {
			return out[i].Likes > out[j].Likes
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

func hasGenre(f model.Film, genreID uint64) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

// --- FriendStore ---

type friendStore struct{ *memStore }

func (m *memStore) asFriends() *friendStore { return &friendStore{m} }

func (f *friendStore) AddFriend(ctx context.Context, ownerID, targetID uint64) (bool, error) {
	if f.friends[ownerID] == nil {
		f.friends[ownerID] = map[uint64]bool{}
	}
	if f.friends[ownerID][targetID] {
		return false, nil
	}
	f.friends[ownerID][targetID] = true
	f.appendEvent(ownerID, targetID, model.EventFriend, model.OperationAdd)
	return true, nil
}

func (f *friendStore) RemoveFriend(ctx context.Context, ownerID, targetID uint64) (bool, error) {
	if !f.friends[ownerID][targetID] {
		return false, nil
	}
	delete(f.friends[ownerID], targetID)
	f.appendEvent(ownerID, targetID, model.EventFriend, model.OperationRemove)
	return true, nil
}

func (f *friendStore) FriendsOf(ctx context.Context, userID uint64) ([]model.User, error) {
	ids := []uint64{}
	for id := range f.friends[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []model.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *friendStore) MutualFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	mine, _ := f.FriendsOf(ctx, userID)
	out := []model.User{}
	for _, u := range mine {
		if f.friends[otherID][u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

// --- EventStore ---

type eventStore struct{ *memStore }

func (m *memStore) asEvents() *eventStore { return &eventStore{m} }

func (e *eventStore) FeedFor(ctx context.Context, userID uint64) ([]model.Event, error) {
	out := []model.Event{}
	for _, ev := range e.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// --- GenreStore / MpaStore ---

type genreStore struct{ *memStore }

func (m *memStore) asGenres() *genreStore { return &genreStore{m} }

func (g *genreStore) List(ctx context.Context) ([]model.Genre, error) { return g.genres, nil }

func (g *genreStore) ByID(ctx context.Context, id uint64) (model.Genre, error) {
	for _, genre := range g.genres {
		if genre.ID == id {
			return genre, nil
		}
	}
	return model.Genre{}, repository.ErrNotFound
}

type mpaStore struct{ *memStore }

func (m *memStore) asMpa() *mpaStore { return &mpaStore{m} }

func (s *mpaStore) List(ctx context.Context) ([]model.Mpa, error) { return s.mpa, nil }

func (s *mpaStore) ByID(ctx context.Context, id uint64) (model.Mpa, error) {
	for _, r := range s.mpa {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Mpa{}, repository.ErrNotFound
}

// --- DirectorStore ---

type directorStore struct{ *memStore }

func (m *memStore) asDirectors() *directorStore { return &directorStore{m} }

func (d *directorStore) List(ctx context.Context) ([]model.Director, error) {
	ids := []uint64{}
	for id := range d.directors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []model.Director{}
	for _, id := range ids {
		out = append(out, d.directors[id])
	}
	return out, nil
}

func (d *directorStore) ByID(ctx context.Context, id uint64) (model.Director, error) {
	dir, ok := d.directors[id]
	if !ok {
		return model.Director{}, repository.ErrNotFound
	}
	return dir, nil
}

func (d *directorStore) Create(ctx context.Context, name string) (uint64, error) {
	d.nextDirector++
	d.directors[d.nextDirector] = model.Director{ID: d.nextDirector, Name: name}
	return d.nextDirector, nil
}

func (d *directorStore) Update(ctx context.Context, dir model.Director) error {
	if _, ok := d.directors[dir.ID]; !ok {
		return repository.ErrNotFound
	}
	d.directors[dir.ID] = dir
	return nil
}

func (d *directorStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := d.directors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.directors, id)
	return nil
}

// recordingPublisher captures published activity messages.
type recordingPublisher struct {
	published []queue.ActivityEvent
}

func (p *recordingPublisher) PublishActivity(ctx context.Context, e queue.ActivityEvent) error {
	p.published = append(p.published, e)
	return nil
}

// newServices wires both services over one shared memStore.
func newServices(m *memStore, pub ActivityPublisher) (*UserService, *FilmService) {
	us := NewUserService(m, m.asFriends(), m.asLikes(), m.asFilms(), pub)
	fs := NewFilmService(m.asFilms(), m, m.asLikes(), m.asGenres(), m.asMpa(), m.asDirectors(), pub)
	return us, fs
}

// seedUser inserts a user directly, bypassing validation.
func seedUser(m *memStore, email, login string) model.User {
	m.nextUser++
	u := model.User{
		ID:       m.nextUser,
		Email:    email,
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	m.users[u.ID] = u
	return u
}

// seedFilm inserts a film directly, bypassing validation.
func seedFilm(m *memStore, title string, year int, opts ...func(*model.Film)) model.Film {
	m.nextFilm++
	f := model.Film{
		ID:          m.nextFilm,
		Title:       title,
		ReleaseDate: time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Mpa:         model.Mpa{ID: 1, Name: "G"},
	}
	for _, opt := range opts {
		opt(&f)
	}
	m.films[f.ID] = f
	return f
}

func withGenre(g model.Genre) func(*model.Film) {
	return func(f *model.Film) { f.Genres = append(f.Genres, g) }
}

func withDirector(d model.Director) func(*model.Film) {
	return func(f *model.Film) { f.Director = &d }
}
