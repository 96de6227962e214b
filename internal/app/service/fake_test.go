package service

import (
	"context"

	"movie-storefront/internal/domain"
)

// fakeCatalog records calls and returns canned values.
type fakeCatalog struct {
	added   *domain.AddedItem
	cart    *domain.Cart
	order   *domain.OrderConfirmation
	movie   *domain.MovieDetail
	star    *domain.StarDetail
	listURL string
	tables  []domain.TableMetadata
	message string
	err     error
	updates []domain.CartAction
	placed  []domain.PaymentForm
	logins  []domain.LoginForm
	stars   []domain.StarForm
	movies  []domain.MovieForm
}

var _ domain.Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) FetchListing(context.Context, domain.QueryState) (*domain.ResultPage, error) {
	return &domain.ResultPage{CurrentPage: 1}, f.err
}

func (f *fakeCatalog) TitleInitials(context.Context) ([]string, error) { return nil, f.err }
func (f *fakeCatalog) Genres(context.Context) ([]string, error)        { return nil, f.err }

func (f *fakeCatalog) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return nil, f.err
}

func (f *fakeCatalog) AddToCart(_ context.Context, movieID string) (*domain.AddedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.added != nil {
		return f.added, nil
	}
	return &domain.AddedItem{ItemID: movieID}, nil
}

func (f *fakeCatalog) Cart(context.Context) (*domain.Cart, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cart, nil
}

func (f *fakeCatalog) UpdateCart(_ context.Context, _ string, action domain.CartAction) error {
	f.updates = append(f.updates, action)
	return f.err
}

func (f *fakeCatalog) PlaceOrder(_ context.Context, form domain.PaymentForm) error {
	f.placed = append(f.placed, form)
	return f.err
}

func (f *fakeCatalog) OrderConfirmation(context.Context) (*domain.OrderConfirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func (f *fakeCatalog) Movie(context.Context, string) (*domain.MovieDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movie, nil
}

func (f *fakeCatalog) Star(context.Context, string) (*domain.StarDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.star, nil
}

func (f *fakeCatalog) MovieListURL(context.Context) (string, error) {
	return f.listURL, f.err
}

func (f *fakeCatalog) Login(_ context.Context, form domain.LoginForm) error {
	f.logins = append(f.logins, form)
	return f.err
}

func (f *fakeCatalog) EmployeeLogin(_ context.Context, form domain.LoginForm) error {
	f.logins = append(f.logins, form)
	return f.err
}

func (f *fakeCatalog) Logout(context.Context) error { return f.err }

func (f *fakeCatalog) AddStar(_ context.Context, form domain.StarForm) (string, error) {
	f.stars = append(f.stars, form)
	return f.message, f.err
}

func (f *fakeCatalog) AddMovie(_ context.Context, form domain.MovieForm) (string, error) {
	f.movies = append(f.movies, form)
	return f.message, f.err
}

func (f *fakeCatalog) Metadata(context.Context) ([]domain.TableMetadata, error) {
	return f.tables, f.err
}
