// Package dto provides the wire types of the development catalog server.
package dto

// LoginRequest is the customer or employee login form.
type LoginRequest struct {
	Email     string `form:"email" validate:"required"`
	Password  string `form:"password" validate:"required"`
	Recaptcha string `form:"g-recaptcha-response"`
}

// AddToCartRequest is the add-to-cart form.
type AddToCartRequest struct {
	MovieID string `form:"movieId" validate:"required"`
}

// CartUpdateRequest is the shopping cart update form.
type CartUpdateRequest struct {
	MovieID string `form:"movie_id" validate:"required"`
	Action  string `form:"action" validate:"required,oneof=increase decrease remove"`
}

// PaymentRequest is the place-order form.
type PaymentRequest struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	CCNumber  string `form:"cc_number" validate:"required"`
	CCExpiry  string `form:"cc_expiry" validate:"required,datetime=2006-01-02"`
}

// AddStarRequest is the dashboard add-star body.
type AddStarRequest struct {
	StarName  string `json:"star_name" validate:"required"`
	BirthYear *int   `json:"birth_year" validate:"omitempty,min=1800,max=2100"`
}

// AddMovieRequest is the dashboard add-movie body.
type AddMovieRequest struct {
	Title     string `json:"title" validate:"required"`
	Year      int    `json:"year" validate:"required,min=1888,max=2100"`
	Director  string `json:"director" validate:"required"`
	StarName  string `json:"star_name" validate:"required"`
	GenreName string `json:"genre_name" validate:"required"`
}
