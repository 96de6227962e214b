package domain

import (
	"context"
)

// Catalog is the storefront's view of the remote movie API.
// Implementations: internal/infra/catalog/
type Catalog interface {
	ListingSource
	SuggestionSource
	CartAPI
	DetailAPI
	AuthAPI
	DashboardAPI
}

// ListingSource serves the movie listing and its browse lists.
type ListingSource interface {
	// FetchListing returns one page of movies matching state.
	// Returns ErrNotLoggedIn when the session is not authenticated.
	FetchListing(ctx context.Context, state QueryState) (*ResultPage, error)

	// TitleInitials returns the distinct leading letters of movie titles.
	TitleInitials(ctx context.Context) ([]string, error)

	// Genres returns the distinct genre names.
	Genres(ctx context.Context) ([]string, error)
}

// SuggestionSource serves autocomplete candidates for the title input.
type SuggestionSource interface {
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}

// SuggestionCache keeps suggestion lists keyed by the exact query for the
// lifetime of one listing page. It is never persisted.
// Implementations: internal/infra/cache/
type SuggestionCache interface {
	Get(query string) ([]Suggestion, bool)
	Add(query string, suggestions []Suggestion)
	Purge()
}

// CartAPI manages the session's shopping cart and checkout.
type CartAPI interface {
	AddToCart(ctx context.Context, movieID string) (*AddedItem, error)
	Cart(ctx context.Context) (*Cart, error)
	UpdateCart(ctx context.Context, movieID string, action CartAction) error
	PlaceOrder(ctx context.Context, form PaymentForm) error
	OrderConfirmation(ctx context.Context) (*OrderConfirmation, error)
}

// DetailAPI serves the single-movie and single-star pages.
type DetailAPI interface {
	Movie(ctx context.Context, id string) (*MovieDetail, error)
	Star(ctx context.Context, id string) (*StarDetail, error)

	// MovieListURL returns the listing URL remembered by the session, or "".
	MovieListURL(ctx context.Context) (string, error)
}

// AuthAPI handles customer and employee sessions.
type AuthAPI interface {
	Login(ctx context.Context, form LoginForm) error
	EmployeeLogin(ctx context.Context, form LoginForm) error
	Logout(ctx context.Context) error
}

// DashboardAPI is the employee dashboard.
type DashboardAPI interface {
	// AddStar returns the server's confirmation message.
	AddStar(ctx context.Context, form StarForm) (string, error)
	// AddMovie returns the server's confirmation message.
	AddMovie(ctx context.Context, form MovieForm) (string, error)
	Metadata(ctx context.Context) ([]TableMetadata, error)
}
