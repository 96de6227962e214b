// Package domain contains the storefront entities and the listing query state.
// This package has no external dependencies (only stdlib).
package domain

import "strings"

// MaxRowGenres is the number of genre links shown per listing row.
const MaxRowGenres = 3

// Movie is one row of the movie listing.
type Movie struct {
	ID       string
	Title    string
	Year     string
	Director string
	Rating   string   // empty when the movie has no rating
	Genres   []string // comma-delimited on the wire
	Stars    []StarRef
}

// StarRef is a star credited on a movie. ID is empty when the wire entry had no id.
type StarRef struct {
	ID   string
	Name string
}

// GenreRef is a genre attached to a movie detail. ID may be empty.
type GenreRef struct {
	ID   string
	Name string
}

// ResultPage is one page of the movie listing.
type ResultPage struct {
	Movies         []Movie
	CurrentPage    int
	HasMoreResults bool
}

// Suggestion is an autocomplete candidate for the title input.
type Suggestion struct {
	ID    string
	Title string
}

// MovieDetail is the single-movie page record.
type MovieDetail struct {
	ID       string
	Title    string
	Year     string
	Director string
	Rating   string
	Genres   []GenreRef
	Stars    []StarRef
}

// StarDetail is the single-star page record.
type StarDetail struct {
	ID        string
	Name      string
	BirthYear string // empty when unknown
	Movies    []StarMovie
}

// StarMovie is one entry of a star's filmography.
type StarMovie struct {
	MovieID  string
	Title    string
	Year     string
	Director string
}

// SplitGenres splits a comma-delimited genre list, trimming blanks.
func SplitGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// ParseStars splits a comma-delimited list of "id:name" entries. Everything after
// the first colon is the name, so names may contain colons. Entries without a
// colon are kept as names without an id.
func ParseStars(raw string) []StarRef {
	var stars []StarRef
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, name, ok := strings.Cut(entry, ":")
		if !ok {
			stars = append(stars, StarRef{Name: entry})
			continue
		}
		stars = append(stars, StarRef{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)})
	}
	return stars
}

// ParseGenreRefs splits a comma-delimited list of "id:name" or "name" genre entries.
// Entries whose name is blank are dropped.
func ParseGenreRefs(raw string) []GenreRef {
	var genres []GenreRef
	for _, entry := range strings.Split(raw, ",") {
		id, name, ok := strings.Cut(entry, ":")
		if !ok {
			id, name = "", entry
		}
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		genres = append(genres, GenreRef{ID: strings.TrimSpace(id), Name: name})
	}
	return genres
}
