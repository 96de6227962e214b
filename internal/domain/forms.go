package domain

// SearchForm holds the search inputs of the movie listing.
type SearchForm struct {
	Title    string `form:"title"`
	Year     string `form:"year" validate:"omitempty,numeric"`
	Director string `form:"director"`
	StarName string `form:"star_name"`
}

// PaymentForm holds the checkout inputs.
type PaymentForm struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	CCNumber  string `form:"cc_number" validate:"required"`
	CCExpiry  string `form:"cc_expiry" validate:"required,datetime=2006-01-02"`
}

// LoginForm holds customer or employee credentials.
type LoginForm struct {
	Email             string `form:"email" validate:"required"`
	Password          string `form:"password" validate:"required"`
	RecaptchaResponse string `form:"g-recaptcha-response"`
}

// StarForm adds a star from the employee dashboard.
type StarForm struct {
	StarName  string `form:"star_name" validate:"required"`
	BirthYear string `form:"birth_year" validate:"omitempty,numeric"`
}

// MovieForm adds a movie from the employee dashboard.
type MovieForm struct {
	Title     string `form:"title" validate:"required"`
	Year      string `form:"year" validate:"required,numeric"`
	Director  string `form:"director" validate:"required"`
	StarName  string `form:"star_name" validate:"required"`
	GenreName string `form:"genre_name" validate:"required"`
}
