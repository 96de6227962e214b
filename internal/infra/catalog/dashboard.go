package catalog

import (
	"context"
	"strconv"

	"movie-storefront/internal/domain"
)

// AddStar creates a star from the employee dashboard.
func (c *Client) AddStar(ctx context.Context, form domain.StarForm) (string, error) {
	req := addStarRequest{StarName: form.StarName}
	if form.BirthYear != "" {
		year, err := strconv.Atoi(form.BirthYear)
		if err != nil {
			return "", &domain.ServerError{Message: "Birth year must be a valid number."}
		}
		req.BirthYear = &year
	}

	var resp dashboardResponse
	if err := c.postJSON(ctx, "adding star", EndpointDashAddStar, req, &resp); err != nil {
		return "", err
	}
	if err := resp.err("Failed to add star. Please try again."); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "Star added successfully!", nil
	}
	return resp.Message, nil
}

// AddMovie creates a movie from the employee dashboard.
func (c *Client) AddMovie(ctx context.Context, form domain.MovieForm) (string, error) {
	year, err := strconv.Atoi(form.Year)
	if err != nil {
		return "", &domain.ServerError{Message: "Movie year must be a valid number."}
	}
	req := addMovieRequest{
		Title:     form.Title,
		Year:      year,
		Director:  form.Director,
		StarName:  form.StarName,
		GenreName: form.GenreName,
	}

	var resp dashboardResponse
	if err := c.postJSON(ctx, "adding movie", EndpointDashAddMovie, req, &resp); err != nil {
		return "", err
	}
	if err := resp.err("Failed to add movie. Please try again."); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "Movie added successfully!", nil
	}
	return resp.Message, nil
}

// Metadata lists the catalog database tables and their attributes.
func (c *Client) Metadata(ctx context.Context) ([]domain.TableMetadata, error) {
	var resp metadataResponse
	if err := c.get(ctx, "fetching metadata", EndpointDashMetadata, "", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("Failed to load metadata. Please try again."); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}
