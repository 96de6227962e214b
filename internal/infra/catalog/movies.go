package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

// Endpoint paths relative to the API base URL.
const (
	EndpointMovies        = "/api/movies"
	EndpointTitleInitials = "/api/title-initials"
	EndpointGenres        = "/api/genres"
	EndpointSuggestion    = "/api/movie-suggestion"
	EndpointMovie         = "/api/movie"
	EndpointStar          = "/api/star"
	EndpointSessionData   = "/api/session-data"
	EndpointAddToCart     = "/api/add-to-cart"
	EndpointShoppingCart  = "/api/shopping-cart"
	EndpointPlaceOrder    = "/api/place-order"
	EndpointOrderDetails  = "/api/order-confirmation-details"
	EndpointLogin         = "/api/login"
	EndpointEmployeeLogin = "/_dashboard/login-action"
	EndpointLogout        = "/logout"
	EndpointDashAddStar   = "/api/dashboard/add-star"
	EndpointDashAddMovie  = "/api/dashboard/add-movie"
	EndpointDashMetadata  = "/api/dashboard/metadata"
)

// FetchListing retrieves one page of movies for state.
func (c *Client) FetchListing(ctx context.Context, state domain.QueryState) (*domain.ResultPage, error) {
	var resp listingResponse
	if err := c.get(ctx, "fetching movies", EndpointMovies, state.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &domain.ServerError{Message: resp.Error, Detail: resp.Detail}
	}

	page := &domain.ResultPage{
		Movies:         make([]domain.Movie, 0, len(resp.Movies)),
		CurrentPage:    resp.CurrentPage,
		HasMoreResults: resp.HasMoreResults,
	}
	if page.CurrentPage < 1 {
		page.CurrentPage = 1
	}
	for _, item := range resp.Movies {
		page.Movies = append(page.Movies, item.ToDomain())
	}

	c.logger.Debug("movie listing fetched",
		zap.String("query", state.Encode()),
		zap.Int("count", len(page.Movies)),
		zap.Bool("has_more", page.HasMoreResults),
	)

	return page, nil
}

// TitleInitials retrieves the browse-by-title letters.
func (c *Client) TitleInitials(ctx context.Context) ([]string, error) {
	var resp initialsResponse
	if err := c.get(ctx, "fetching title initials", EndpointTitleInitials, "", &resp); err != nil {
		return nil, err
	}
	return resp.Initials, nil
}

// Genres retrieves the browse-by-genre names.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var resp genresResponse
	if err := c.get(ctx, "fetching genres", EndpointGenres, "", &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Suggest retrieves autocomplete candidates for query.
func (c *Client) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	var resp suggestionResponse
	rawQuery := url.Values{"query": {query}}.Encode()
	if err := c.get(ctx, "fetching suggestions", EndpointSuggestion, rawQuery, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &domain.ServerError{Message: resp.Error}
	}

	suggestions := make([]domain.Suggestion, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		suggestions = append(suggestions, domain.Suggestion{ID: string(s.ID), Title: string(s.Title)})
	}
	return suggestions, nil
}

// Movie retrieves the single-movie record for id.
func (c *Client) Movie(ctx context.Context, id string) (*domain.MovieDetail, error) {
	var resp singleMovieResponse
	if err := c.get(ctx, "fetching movie", EndpointMovie, url.Values{"id": {id}}.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &domain.ServerError{Message: resp.Error}
	}
	if len(resp.Movies) == 0 {
		return nil, fmt.Errorf("movie %q: %w", id, domain.ErrNotFound)
	}

	detail := resp.Movies[0].ToDetail(id)
	return &detail, nil
}

// Star retrieves the single-star record for id.
func (c *Client) Star(ctx context.Context, id string) (*domain.StarDetail, error) {
	var resp singleStarResponse
	if err := c.get(ctx, "fetching star", EndpointStar, url.Values{"id": {id}}.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &domain.ServerError{Message: resp.Error}
	}
	if resp.StarInfo == nil {
		return nil, &domain.MalformedPayloadError{Err: errors.New("star information structure not found in response")}
	}

	star := &domain.StarDetail{
		ID:        id,
		Name:      string(resp.StarInfo.StarName),
		BirthYear: string(resp.StarInfo.BirthYear),
	}
	for _, m := range resp.StarInfo.Movies {
		star.Movies = append(star.Movies, domain.StarMovie{
			MovieID:  string(m.MovieID),
			Title:    string(m.Title),
			Year:     string(m.Year),
			Director: string(m.Director),
		})
	}
	return star, nil
}

// MovieListURL returns the listing URL the session last visited, or "".
func (c *Client) MovieListURL(ctx context.Context) (string, error) {
	var resp sessionDataResponse
	if err := c.get(ctx, "fetching session data", EndpointSessionData, "", &resp); err != nil {
		return "", err
	}
	return resp.MovieListURL, nil
}
