package catalog

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"movie-storefront/internal/domain"
)

// flexString accepts a JSON string, number or null. Numbers keep their literal text.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number, numeric string or null.
type flexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// errorBody is the error shape shared by every endpoint.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// statusBody is the {"status": "success"|"fail", "message": ...} envelope.
type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (b statusBody) err(fallback string) error {
	if b.Status == "success" {
		return nil
	}
	msg := b.Message
	if msg == "" {
		msg = fallback
	}
	return &domain.ServerError{Message: msg}
}

// movieItem is one movie as the listing and single-movie endpoints send it.
// genres and stars are comma-delimited strings; stars entries are "id:name".
type movieItem struct {
	ID       flexString `json:"id"`
	Title    flexString `json:"title"`
	Year     flexString `json:"year"`
	Director flexString `json:"director"`
	Rating   flexString `json:"rating"`
	Genres   flexString `json:"genres"`
	Stars    flexString `json:"stars"`
}

func (m movieItem) rating() string {
	if m.Rating == "N/A" {
		return ""
	}
	return string(m.Rating)
}

// ToDomain narrows a listing row.
func (m movieItem) ToDomain() domain.Movie {
	return domain.Movie{
		ID:       string(m.ID),
		Title:    string(m.Title),
		Year:     string(m.Year),
		Director: string(m.Director),
		Rating:   m.rating(),
		Genres:   domain.SplitGenres(string(m.Genres)),
		Stars:    domain.ParseStars(string(m.Stars)),
	}
}

// ToDetail narrows a single-movie record. Genres may be "id:name" or plain names.
func (m movieItem) ToDetail(requestedID string) domain.MovieDetail {
	id := string(m.ID)
	if id == "" {
		id = requestedID
	}
	return domain.MovieDetail{
		ID:       id,
		Title:    string(m.Title),
		Year:     string(m.Year),
		Director: string(m.Director),
		Rating:   m.rating(),
		Genres:   domain.ParseGenreRefs(string(m.Genres)),
		Stars:    domain.ParseStars(string(m.Stars)),
	}
}

type listingResponse struct {
	errorBody
	Movies         []movieItem `json:"movies"`
	CurrentPage    int         `json:"currentPage"`
	Limit          int         `json:"limit"`
	HasMoreResults bool        `json:"hasMoreResults"`
}

type initialsResponse struct {
	Initials []string `json:"initials"`
}

type genresResponse struct {
	Genres []string `json:"genres"`
}

type suggestionResponse struct {
	errorBody
	Suggestions []struct {
		ID    flexString `json:"id"`
		Title flexString `json:"title"`
	} `json:"suggestions"`
}

type singleMovieResponse struct {
	errorBody
	Movies []movieItem `json:"movies"`
}

type singleStarResponse struct {
	errorBody
	StarInfo *struct {
		StarName  flexString `json:"starName"`
		BirthYear flexString `json:"birthYear"`
		Movies    []struct {
			MovieID  flexString `json:"movieId"`
			Title    flexString `json:"title"`
			Year     flexString `json:"year"`
			Director flexString `json:"director"`
		} `json:"movies"`
	} `json:"starInfo"`
}

type sessionDataResponse struct {
	MovieListURL string `json:"movieListUrl"`
}

type addToCartResponse struct {
	statusBody
	ItemID    flexString `json:"itemId"`
	ItemTitle flexString `json:"itemTitle"`
}

type cartResponse struct {
	CartItems []struct {
		MovieID    flexString `json:"movie_id"`
		MovieTitle flexString `json:"movie_title"`
		Quantity   flexFloat  `json:"quantity"`
		Price      flexFloat  `json:"price"`
	} `json:"cart_items"`
	TotalPrice flexFloat `json:"total_price"`
}

func (r cartResponse) ToDomain() *domain.Cart {
	cart := &domain.Cart{TotalPrice: float64(r.TotalPrice)}
	for _, item := range r.CartItems {
		cart.Items = append(cart.Items, domain.CartItem{
			MovieID:  string(item.MovieID),
			Title:    string(item.MovieTitle),
			Quantity: int(item.Quantity),
			Price:    float64(item.Price),
		})
	}
	return cart
}

type confirmationResponse struct {
	statusBody
	Data *struct {
		SaleIDs []flexString `json:"saleIds"`
		Items   []struct {
			MovieTitle flexString `json:"movieTitle"`
			Quantity   flexFloat  `json:"quantity"`
			Price      flexFloat  `json:"price"`
		} `json:"items"`
		TotalPrice *flexFloat `json:"totalPrice"`
	} `json:"data"`
}

type dashboardResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r dashboardResponse) err(fallback string) error {
	if r.Success {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = fallback
	}
	return &domain.ServerError{Message: msg}
}

type metadataResponse struct {
	dashboardResponse
	Data map[string][]struct {
		AttributeName string `json:"attributeName"`
		Type          string `json:"type"`
	} `json:"data"`
}

// ToDomain returns the tables sorted by name.
func (r metadataResponse) ToDomain() []domain.TableMetadata {
	names := make([]string, 0, len(r.Data))
	for name := range r.Data {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]domain.TableMetadata, 0, len(names))
	for _, name := range names {
		table := domain.TableMetadata{Table: name}
		for _, attr := range r.Data[name] {
			table.Attributes = append(table.Attributes, domain.Attribute{Name: attr.AttributeName, Type: attr.Type})
		}
		tables = append(tables, table)
	}
	return tables
}

type addStarRequest struct {
	StarName  string `json:"star_name"`
	BirthYear *int   `json:"birth_year,omitempty"`
}

type addMovieRequest struct {
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Director  string `json:"director"`
	StarName  string `json:"star_name"`
	GenreName string `json:"genre_name"`
}
