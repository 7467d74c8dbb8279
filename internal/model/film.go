package model

import "time"

// Film represents a row in the `films` table together with its
// joined metadata. Likes is derived from the likes table (count of
// users who liked the film), never stored on the row itself.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – film title.
//  Description – free text, at most 200 characters.
//  ReleaseDate – release date; must not precede 1895-12-28.
//  Duration    – running time in minutes, non-negative.
//  Mpa         – MPA content rating (referenced by id).
//  Genres      – unordered set of genres.
//  Director    – optional director reference (nil when unattributed).
//  Likes       – number of users who liked the film (derived).
type Film struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	Duration    int       `json:"duration"`
	Mpa         Mpa       `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Director    *Director `json:"director,omitempty"`
	Likes       int       `json:"likes"`
}

// Mpa is one entry of the fixed MPA rating enumeration
// (G, PG, PG-13, R, NC-17) stored in the `mpa_ratings` table.
type Mpa struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Genre is a row in the `genres` table. Films reference genres
// through the `film_genres` join table.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Director is a row in the `directors` table.
type Director struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
