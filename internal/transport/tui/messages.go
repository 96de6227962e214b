package tui

import (
	"movie-storefront/internal/app/autocomplete"
	"movie-storefront/internal/app/listing"
	"movie-storefront/internal/app/service"
	"movie-storefront/internal/domain"
)

// navigateMsg asks the root model to load a new location.
// replace overwrites the current history entry instead of pushing.
type navigateMsg struct {
	loc     domain.Location
	replace bool
}

// flashMsg shows a temporary status-line message.
type flashMsg struct {
	text    string
	isError bool
}

// flashClearMsg clears the flash message it was scheduled for.
type flashClearMsg struct {
	id uint64
}

// listingLoadedMsg carries one listing fetch result.
type listingLoadedMsg struct {
	result listing.Result
}

// browseLoadedMsg carries the browse lists fetched on page load.
type browseLoadedMsg struct {
	initials []string
	genres   []string
	err      error
}

// suggestDueMsg fires when a debounce ticket's delay has elapsed.
type suggestDueMsg struct {
	ticket autocomplete.Ticket
}

// suggestionsLoadedMsg carries one suggestion lookup result.
type suggestionsLoadedMsg struct {
	ticket      autocomplete.Ticket
	suggestions []domain.Suggestion
	err         error
}

// blurExpiredMsg fires when the title input's blur grace has elapsed.
type blurExpiredMsg struct {
	token uint64
}

// addedToCartMsg carries the add-to-cart outcome.
type addedToCartMsg struct {
	message string
	err     error
}

// movieLoadedMsg carries the single-movie page data.
type movieLoadedMsg struct {
	view service.MovieView
	back domain.Location
	err  error
}

// starLoadedMsg carries the single-star page data.
type starLoadedMsg struct {
	view service.StarView
	back domain.Location
	err  error
}

// cartLoadedMsg carries the shopping cart.
type cartLoadedMsg struct {
	view service.CartView
	err  error
}

// cartUpdatedMsg reports a quantity change.
type cartUpdatedMsg struct {
	err error
}

// totalLoadedMsg carries the payment page total.
type totalLoadedMsg struct {
	total float64
	err   error
}

// orderPlacedMsg reports a payment submission.
type orderPlacedMsg struct {
	message string
	err     error
}

// confirmationLoadedMsg carries the order confirmation.
type confirmationLoadedMsg struct {
	view service.ConfirmationView
	err  error
}

// loginDoneMsg reports a login or logout attempt.
type loginDoneMsg struct {
	next    domain.Location
	message string
	err     error
}

// dashboardDoneMsg reports a dashboard form submission.
type dashboardDoneMsg struct {
	section dashboardSection
	message string
	err     error
}

// metadataLoadedMsg carries the database metadata.
type metadataLoadedMsg struct {
	view service.MetadataView
	err  error
}
