package dto

import (
	"math"
	"strings"

	"movie-storefront/internal/infra/memstore"
)

// MovieItem is a movie as the listing and single-movie endpoints send it.
// Genres and stars are comma-delimited; each star is "id:name".
type MovieItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Rating   *float64 `json:"rating"`
	Genres   string   `json:"genres"`
	Stars    string   `json:"stars"`
}

// FromMovieRecord converts a store movie and its stars to MovieItem.
func FromMovieRecord(m memstore.MovieRecord, stars []memstore.StarRecord) MovieItem {
	refs := make([]string, 0, len(stars))
	for _, s := range stars {
		refs = append(refs, s.ID+":"+s.Name)
	}

	var rating *float64
	if m.Rating != nil {
		r := math.Round(*m.Rating*10) / 10
		rating = &r
	}

	return MovieItem{
		ID:       m.ID,
		Title:    m.Title,
		Year:     m.Year,
		Director: m.Director,
		Rating:   rating,
		Genres:   strings.Join(m.Genres, ", "),
		Stars:    strings.Join(refs, ", "),
	}
}

// ListingResponse is one page of the movie listing.
type ListingResponse struct {
	Movies         []MovieItem `json:"movies"`
	CurrentPage    int         `json:"currentPage"`
	Limit          int         `json:"limit"`
	HasMoreResults bool        `json:"hasMoreResults"`
}

// InitialsResponse lists the browse-by-title letters.
type InitialsResponse struct {
	Initials []string `json:"initials"`
}

// GenresResponse lists the browse-by-genre names.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SuggestionResponse is the autocomplete answer.
type SuggestionResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// SingleMovieResponse wraps the single-movie record.
type SingleMovieResponse struct {
	Movies []MovieItem `json:"movies"`
}

// StarMovie is one movie credit on the single-star page.
type StarMovie struct {
	MovieID  string `json:"movieId"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Director string `json:"director"`
}

// StarInfo is the single-star record.
type StarInfo struct {
	StarName  string      `json:"starName"`
	BirthYear *int        `json:"birthYear"`
	Movies    []StarMovie `json:"movies"`
}

// SingleStarResponse wraps the single-star record.
type SingleStarResponse struct {
	StarInfo StarInfo `json:"starInfo"`
}

// SessionDataResponse carries the listing URL the session last visited.
type SessionDataResponse struct {
	MovieListURL string `json:"movieListUrl"`
}

// StatusResponse is the {"status": "success"|"fail"} envelope.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Success returns a success envelope.
func Success(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}

// Fail returns a failure envelope.
func Fail(message string) StatusResponse {
	return StatusResponse{Status: "fail", Message: message}
}

// AddToCartResponse reports the added item.
type AddToCartResponse struct {
	StatusResponse
	ItemID    string `json:"itemId"`
	ItemTitle string `json:"itemTitle"`
}

// CartItem is one shopping cart line.
type CartItem struct {
	MovieID    string  `json:"movie_id"`
	MovieTitle string  `json:"movie_title"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// CartResponse is the shopping cart.
type CartResponse struct {
	CartItems  []CartItem `json:"cart_items"`
	TotalPrice float64    `json:"total_price"`
}

// OrderItem is one purchased line.
type OrderItem struct {
	MovieTitle string  `json:"movieTitle"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// OrderDetails is the last order placed in a session.
type OrderDetails struct {
	SaleIDs    []int       `json:"saleIds"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
}

// OrderDetailsResponse wraps the last order.
type OrderDetailsResponse struct {
	StatusResponse
	Data *OrderDetails `json:"data,omitempty"`
}

// DashboardResponse is the {"success": bool} envelope of the dashboard API.
type DashboardResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Attribute is one column in the metadata answer.
type Attribute struct {
	AttributeName string `json:"attributeName"`
	Type          string `json:"type"`
}

// MetadataResponse lists every table's columns.
type MetadataResponse struct {
	DashboardResponse
	Data map[string][]Attribute `json:"data"`
}

// FromMetadata converts the store schema.
func FromMetadata(tables map[string][]memstore.Column) MetadataResponse {
	resp := MetadataResponse{
		DashboardResponse: DashboardResponse{Success: true},
		Data:              make(map[string][]Attribute, len(tables)),
	}
	for table, cols := range tables {
		attrs := make([]Attribute, 0, len(cols))
		for _, c := range cols {
			attrs = append(attrs, Attribute{AttributeName: c.Name, Type: c.Type})
		}
		resp.Data[table] = attrs
	}
	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}
