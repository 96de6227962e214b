package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/infra/redis"
	"movie-storefront/internal/transport/httpserver/dto"
	"movie-storefront/internal/validator"
)

// browser sends requests to the app and keeps the session cookie like a browser.
type browser struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	store, err := memstore.New()
	require.NoError(t, err)
	srv := NewServer(ServerConfig{BodyLimit: 1 << 20}, store, validator.New(), zap.NewNop())
	return &browser{t: t, app: srv.App}
}

func (b *browser) do(req *http.Request, out interface{}) int {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == "JSESSIONID" {
			b.cookie = c
		}
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	if out != nil {
		require.NoError(b.t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func (b *browser) get(target string, out interface{}) int {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil), out)
}

func (b *browser) postForm(target string, form url.Values, out interface{}) int {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return b.do(req, out)
}

func (b *browser) postJSON(target, body string, out interface{}) int {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return b.do(req, out)
}

func (b *browser) login() {
	b.t.Helper()
	var resp dto.StatusResponse
	b.postForm("/api/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}}, &resp)
	require.Equal(b.t, "success", resp.Status, resp.Message)
}

func TestRouter_HealthChecks(t *testing.T) {
	b := newBrowser(t)

	assert.Equal(t, http.StatusOK, b.get("/livez", nil))
	assert.Equal(t, http.StatusOK, b.get("/readyz", nil))
	assert.Nil(t, b.cookie)
}

func TestRouter_RequiresLogin(t *testing.T) {
	b := newBrowser(t)

	var resp dto.ErrorResponse
	status := b.get("/api/movies", &resp)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "User not logged in", resp.Error)
}

func TestRouter_LoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		expected string
	}{
		{"unknown email", url.Values{"email": {"nobody@example.com"}, "password": {"x"}}, "Email not found."},
		{"wrong password", url.Values{"email": {"ada@example.com"}, "password": {"x"}}, "Incorrect password."},
		{"missing password", url.Values{"email": {"ada@example.com"}}, "Email and password are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t)

			var resp dto.StatusResponse
			status := b.postForm("/api/login", tt.form, &resp)

			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "fail", resp.Status)
			assert.Equal(t, tt.expected, resp.Message)
		})
	}
}

func TestRouter_ListingRemembersURL(t *testing.T) {
	b := newBrowser(t)
	b.login()

	var listing dto.ListingResponse
	require.Equal(t, http.StatusOK, b.get("/api/movies?genre=Crime&sort1=title&order1=asc&limit=10&page=1", &listing))
	require.NotEmpty(t, listing.Movies)
	assert.Equal(t, 10, listing.Limit)
	assert.Equal(t, 1, listing.CurrentPage)
	for _, m := range listing.Movies {
		assert.Contains(t, m.Genres, "Crime")
	}

	var session dto.SessionDataResponse
	b.get("/api/session-data", &session)
	assert.Equal(t, "movies.html?genre=Crime&sort1=title&order1=asc&limit=10&page=1", session.MovieListURL)
}

func TestRouter_MovieAndStar(t *testing.T) {
	b := newBrowser(t)
	b.login()

	var movie dto.SingleMovieResponse
	require.Equal(t, http.StatusOK, b.get("/api/movie?id=tt0113277", &movie))
	require.Len(t, movie.Movies, 1)
	assert.Equal(t, "Heat", movie.Movies[0].Title)

	var missing dto.SingleMovieResponse
	b.get("/api/movie?id=tt0000000", &missing)
	assert.Empty(t, missing.Movies)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, b.get("/api/movie", &errResp))
	assert.Equal(t, "Movie ID is required.", errResp.Error)

	var star dto.SingleStarResponse
	starID := strings.SplitN(movie.Movies[0].Stars, ":", 2)[0]
	require.Equal(t, http.StatusOK, b.get("/api/star?id="+starID, &star))
	assert.NotEmpty(t, star.StarInfo.StarName)
	assert.NotEmpty(t, star.StarInfo.Movies)

	assert.Equal(t, http.StatusNotFound, b.get("/api/star?id=nm0000000", &errResp))
}

func TestRouter_CartFlow(t *testing.T) {
	b := newBrowser(t)
	b.login()

	var added dto.AddToCartResponse
	require.Equal(t, http.StatusOK, b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0113277"}}, &added))
	assert.Equal(t, "Heat", added.ItemTitle)
	b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0113277"}}, nil)

	var cart dto.CartResponse
	b.get("/api/shopping-cart", &cart)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.InDelta(t, cart.CartItems[0].Price*2, cart.TotalPrice, 0.001)

	var updated dto.StatusResponse
	b.postForm("/api/shopping-cart", url.Values{"movie_id": {"tt0113277"}, "action": {"decrease"}}, &updated)
	assert.Equal(t, "success", updated.Status)

	var bad dto.StatusResponse
	assert.Equal(t, http.StatusBadRequest,
		b.postForm("/api/shopping-cart", url.Values{"movie_id": {"tt0000000"}, "action": {"remove"}}, &bad))
	assert.Equal(t, "Missing parameters or item not found in cart.", bad.Message)

	assert.Equal(t, http.StatusBadRequest,
		b.postForm("/api/shopping-cart", url.Values{"movie_id": {"tt0113277"}, "action": {"double"}}, &bad))
	assert.Equal(t, "Invalid action specified.", bad.Message)

	var notFound dto.StatusResponse
	assert.Equal(t, http.StatusNotFound, b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0000000"}}, &notFound))
	assert.Equal(t, "Movie not found with ID: tt0000000", notFound.Message)
}

func TestRouter_PlaceOrder(t *testing.T) {
	b := newBrowser(t)
	b.login()

	payment := url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"cc_number":  {"4111111111111111"},
		"cc_expiry":  {"2030-01-31"},
	}

	var resp dto.StatusResponse
	assert.Equal(t, http.StatusBadRequest, b.postForm("/api/place-order", payment, &resp))
	assert.Equal(t, "Shopping cart is empty.", resp.Message)

	var details dto.OrderDetailsResponse
	assert.Equal(t, http.StatusNotFound, b.get("/api/order-confirmation-details", &details))
	assert.Equal(t, "fail", details.Status)

	b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0113277"}}, nil)

	wrongCard := url.Values{}
	for k, v := range payment {
		wrongCard[k] = v
	}
	wrongCard.Set("cc_number", "4000000000000002")
	b.postForm("/api/place-order", wrongCard, &resp)
	assert.Equal(t, "Invalid credit card information or card expired.", resp.Message)

	badDate := url.Values{}
	for k, v := range payment {
		badDate[k] = v
	}
	badDate.Set("cc_expiry", "01/30")
	b.postForm("/api/place-order", badDate, &resp)
	assert.Equal(t, "Invalid expiration date format. Use YYYY-MM-DD.", resp.Message)

	require.Equal(t, http.StatusOK, b.postForm("/api/place-order", payment, &resp))
	assert.Equal(t, "Order placed successfully!", resp.Message)

	b.get("/api/order-confirmation-details", &details)
	require.NotNil(t, details.Data)
	assert.Len(t, details.Data.SaleIDs, 1)
	assert.Equal(t, "Heat", details.Data.Items[0].MovieTitle)

	var cart dto.CartResponse
	b.get("/api/shopping-cart", &cart)
	assert.Empty(t, cart.CartItems)
}

func TestRouter_Dashboard(t *testing.T) {
	b := newBrowser(t)

	var denied dto.DashboardResponse
	assert.Equal(t, http.StatusUnauthorized, b.get("/api/dashboard/metadata", &denied))
	assert.False(t, denied.Success)

	// a customer login does not open the dashboard
	b.login()
	assert.Equal(t, http.StatusUnauthorized, b.get("/api/dashboard/metadata", &denied))

	var login dto.StatusResponse
	b.postForm("/_dashboard/login-action", url.Values{"email": {"classta@email.edu"}, "password": {"classta"}}, &login)
	require.Equal(t, "success", login.Status)

	var resp dto.DashboardResponse
	require.Equal(t, http.StatusOK, b.postJSON("/api/dashboard/add-star", `{"star_name":"New Star","birth_year":1970}`, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Star 'New Star' added successfully with ID nm2989367.", resp.Message)

	assert.Equal(t, http.StatusConflict, b.postJSON("/api/dashboard/add-star", `{"star_name":"New Star"}`, &resp))
	assert.Equal(t, "Star with this name already exists.", resp.Message)

	assert.Equal(t, http.StatusBadRequest, b.postJSON("/api/dashboard/add-star", `{"star_name":`, &resp))
	assert.Equal(t, "Error parsing request: Invalid JSON format.", resp.Message)

	body := `{"title":"Fresh Film","year":2024,"director":"Someone","star_name":"New Star","genre_name":"Drama"}`
	require.Equal(t, http.StatusOK, b.postJSON("/api/dashboard/add-movie", body, &resp))
	assert.Contains(t, resp.Message, "Star ID: nm2989367 (existing)")

	assert.Equal(t, http.StatusBadRequest, b.postJSON("/api/dashboard/add-movie", `{"title":"x"}`, &resp))
	assert.Equal(t, "All fields are required.", resp.Message)

	var meta dto.MetadataResponse
	require.Equal(t, http.StatusOK, b.get("/api/dashboard/metadata", &meta))
	assert.Contains(t, meta.Data, "movies")
}

func TestRouter_Logout(t *testing.T) {
	b := newBrowser(t)
	b.login()
	b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0113277"}}, nil)

	var resp dto.StatusResponse
	require.Equal(t, http.StatusOK, b.get("/logout", &resp))
	assert.Equal(t, "success", resp.Status)

	assert.Equal(t, http.StatusUnauthorized, b.get("/api/shopping-cart", nil))
}

func TestRouter_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	storage := redis.NewSessionStorage(client, zap.NewNop(), "catalog")

	store, err := memstore.New()
	require.NoError(t, err)
	newApp := func() *fiber.App {
		cfg := ServerConfig{BodyLimit: 1 << 20, SessionStorage: storage}
		return NewServer(cfg, store, validator.New(), zap.NewNop()).App
	}

	b := &browser{t: t, app: newApp()}
	b.login()
	b.postForm("/api/add-to-cart", url.Values{"movieId": {"tt0113277"}}, nil)
	require.NotNil(t, b.cookie)
	assert.True(t, mr.Exists("catalog:"+b.cookie.Value))

	// a second server sharing the storage sees the same session
	b.app = newApp()
	var cart dto.CartResponse
	require.Equal(t, http.StatusOK, b.get("/api/shopping-cart", &cart))
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, "Heat", cart.CartItems[0].MovieTitle)
}
