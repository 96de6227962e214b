// Package memstore is an in-memory movie catalog loaded from a JSON fixture.
// It backs the development catalog server.
package memstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed fixtures.json
var defaultFixtures []byte

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a new record duplicates an existing one.
	ErrConflict = errors.New("already exists")
	// ErrBadCredentials is returned by the login checks.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrUnknownEmail and ErrWrongPassword tell the customer login failures apart.
	ErrUnknownEmail  = fmt.Errorf("email not found: %w", ErrBadCredentials)
	ErrWrongPassword = fmt.Errorf("incorrect password: %w", ErrBadCredentials)
)

// MovieRecord is one movie row.
type MovieRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Rating   *float64 `json:"rating"`
	Price    float64  `json:"price"`
	Genres   []string `json:"genres"`
	StarIDs  []string `json:"stars"`
}

// StarRecord is one star row.
type StarRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birthYear"`
}

// Customer is a storefront account.
type Customer struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CardID    string `json:"ccId"`
}

// Employee is a dashboard account.
type Employee struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
}

// CreditCard is a card on file.
type CreditCard struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Expiration string `json:"expiration"`
}

// Sale is one purchased cart line.
type Sale struct {
	ID         int
	CustomerID int
	MovieID    string
	Quantity   int
}

type fixtures struct {
	Movies      []MovieRecord `json:"movies"`
	Stars       []StarRecord  `json:"stars"`
	Customers   []Customer    `json:"customers"`
	Employees   []Employee    `json:"employees"`
	CreditCards []CreditCard  `json:"creditcards"`
}

// Store is a concurrency-safe in-memory catalog.
type Store struct {
	mu         sync.RWMutex
	movies     []*MovieRecord
	moviesByID map[string]*MovieRecord
	stars      map[string]*StarRecord
	customers  map[string]Customer
	employees  map[string]Employee
	cards      map[string]CreditCard
	sales      []Sale
}

// New loads the bundled fixture catalog.
func New() (*Store, error) {
	return NewFromJSON(defaultFixtures)
}

// NewFromJSON loads a catalog from fixture JSON.
func NewFromJSON(data []byte) (*Store, error) {
	var f fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}

	s := &Store{
		moviesByID: make(map[string]*MovieRecord, len(f.Movies)),
		stars:      make(map[string]*StarRecord, len(f.Stars)),
		customers:  make(map[string]Customer, len(f.Customers)),
		employees:  make(map[string]Employee, len(f.Employees)),
		cards:      make(map[string]CreditCard, len(f.CreditCards)),
	}
	for i := range f.Stars {
		star := f.Stars[i]
		s.stars[star.ID] = &star
	}
	for i := range f.Movies {
		m := f.Movies[i]
		for _, id := range m.StarIDs {
			if _, ok := s.stars[id]; !ok {
				return nil, fmt.Errorf("movie %s: unknown star %s", m.ID, id)
			}
		}
		s.movies = append(s.movies, &m)
		s.moviesByID[m.ID] = &m
	}
	for _, c := range f.Customers {
		s.customers[strings.ToLower(c.Email)] = c
	}
	for _, e := range f.Employees {
		s.employees[strings.ToLower(e.Email)] = e
	}
	for _, c := range f.CreditCards {
		s.cards[c.ID] = c
	}

	return s, nil
}

// Movie returns the movie with id and its stars, most prolific first.
func (s *Store) Movie(id string) (MovieRecord, []StarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.moviesByID[id]
	if !ok {
		return MovieRecord{}, nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	return *m, s.rankedStars(m, 0), nil
}

// Star returns the star with id and the movies they appear in, newest first.
func (s *Store) Star(id string) (StarRecord, []MovieRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	star, ok := s.stars[id]
	if !ok {
		return StarRecord{}, nil, fmt.Errorf("star %s: %w", id, ErrNotFound)
	}

	var movies []MovieRecord
	for _, m := range s.movies {
		for _, sid := range m.StarIDs {
			if sid == id {
				movies = append(movies, *m)
				break
			}
		}
	}
	sort.SliceStable(movies, func(i, j int) bool {
		if movies[i].Year != movies[j].Year {
			return movies[i].Year > movies[j].Year
		}
		return movies[i].Title < movies[j].Title
	})
	return *star, movies, nil
}

// rankedStars returns m's stars ordered by how many movies each appears in,
// then by name. limit <= 0 returns all of them.
func (s *Store) rankedStars(m *MovieRecord, limit int) []StarRecord {
	counts := s.starMovieCounts()
	stars := make([]StarRecord, 0, len(m.StarIDs))
	for _, id := range m.StarIDs {
		stars = append(stars, *s.stars[id])
	}
	sort.SliceStable(stars, func(i, j int) bool {
		ci, cj := counts[stars[i].ID], counts[stars[j].ID]
		if ci != cj {
			return ci > cj
		}
		return stars[i].Name < stars[j].Name
	})
	if limit > 0 && len(stars) > limit {
		stars = stars[:limit]
	}
	return stars
}

func (s *Store) starMovieCounts() map[string]int {
	counts := make(map[string]int, len(s.stars))
	for _, m := range s.movies {
		for _, id := range m.StarIDs {
			counts[id]++
		}
	}
	return counts
}

// AuthenticateCustomer checks a customer's credentials.
func (s *Store) AuthenticateCustomer(email, password string) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Customer{}, ErrUnknownEmail
	}
	if c.Password != password {
		return Customer{}, ErrWrongPassword
	}
	return c, nil
}

// AuthenticateEmployee checks an employee's credentials.
func (s *Store) AuthenticateEmployee(email, password string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[strings.ToLower(strings.TrimSpace(email))]
	if !ok || e.Password != password {
		return Employee{}, ErrBadCredentials
	}
	return e, nil
}

// CardMatches reports whether the card on file matches the holder and expiry.
func (s *Store) CardMatches(firstName, lastName, number, expiry string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[number]
	return ok && c.FirstName == firstName && c.LastName == lastName && c.Expiration == expiry
}

// RecordSale stores one sale per line and returns the sale ids in order.
func (s *Store) RecordSale(customerID int, lines map[string]int, order []string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(order))
	for _, movieID := range order {
		sale := Sale{
			ID:         len(s.sales) + 1,
			CustomerID: customerID,
			MovieID:    movieID,
			Quantity:   lines[movieID],
		}
		s.sales = append(s.sales, sale)
		ids = append(ids, sale.ID)
	}
	return ids
}

// AddStar inserts a star and returns its new id.
func (s *Store) AddStar(name string, birthYear *int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.starByName(name) != nil {
		return "", fmt.Errorf("star %q: %w", name, ErrConflict)
	}
	return s.insertStar(name, birthYear), nil
}

func (s *Store) starByName(name string) *StarRecord {
	for _, star := range s.stars {
		if star.Name == name {
			return star
		}
	}
	return nil
}

func (s *Store) insertStar(name string, birthYear *int) string {
	id := fmt.Sprintf("nm%07d", maxNumericID(s.starIDs(), "nm")+1)
	s.stars[id] = &StarRecord{ID: id, Name: name, BirthYear: birthYear}
	return id
}

func (s *Store) starIDs() []string {
	ids := make([]string, 0, len(s.stars))
	for id := range s.stars {
		ids = append(ids, id)
	}
	return ids
}

// NewMovie is the add-movie input.
type NewMovie struct {
	Title     string
	Year      int
	Director  string
	StarName  string
	GenreName string
	Price     float64
}

// AddedMovie reports the ids used by AddMovie.
type AddedMovie struct {
	MovieID     string
	StarID      string
	StarCreated bool
}

// AddMovie inserts a movie, creating its star when no star has that name.
func (s *Store) AddMovie(in NewMovie) (AddedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.movies {
		if m.Title == in.Title && m.Year == in.Year && m.Director == in.Director {
			return AddedMovie{}, fmt.Errorf("movie %q (%d): %w", in.Title, in.Year, ErrConflict)
		}
	}

	var out AddedMovie
	if star := s.starByName(in.StarName); star != nil {
		out.StarID = star.ID
	} else {
		out.StarID = s.insertStar(in.StarName, nil)
		out.StarCreated = true
	}

	ids := make([]string, 0, len(s.movies))
	for _, m := range s.movies {
		ids = append(ids, m.ID)
	}
	out.MovieID = fmt.Sprintf("tt%07d", maxNumericID(ids, "tt")+1)

	m := &MovieRecord{
		ID:       out.MovieID,
		Title:    in.Title,
		Year:     in.Year,
		Director: in.Director,
		Price:    in.Price,
		Genres:   []string{in.GenreName},
		StarIDs:  []string{out.StarID},
	}
	s.movies = append(s.movies, m)
	s.moviesByID[m.ID] = m
	return out, nil
}

func maxNumericID(ids []string, prefix string) int {
	highest := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err == nil && strings.HasPrefix(id, prefix) && n > highest {
			highest = n
		}
	}
	return highest
}
