// Package handler provides the HTTP handlers of the development catalog server.
package handler

import (
	"encoding/gob"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"movie-storefront/internal/transport/httpserver/dto"
)

// Session keys, named after the attributes the catalog API keeps.
const (
	keyCustomerEmail = "email"
	keyCustomerID    = "customerId"
	keyEmployeeEmail = "employeeEmail"
	keyVisit         = "visit"
)

const (
	localsSession = "session"
	localsVisit   = "visit"
	localsEnded   = "sessionEnded"
)

func init() {
	gob.Register(VisitState{})
}

// CartLine is one shopping cart entry.
type CartLine struct {
	MovieID  string
	Title    string
	Quantity int
	Price    float64
}

// VisitState is what a session remembers between requests besides the login.
type VisitState struct {
	Cart      []CartLine
	ListURL   string
	LastOrder *dto.OrderDetails
}

// Visit is the per-request view of a session's VisitState.
// It is written back to the session only when changed.
type Visit struct {
	state VisitState
	dirty bool
}

func (v *Visit) setListURL(u string) {
	if v.state.ListURL != u {
		v.state.ListURL = u
		v.dirty = true
	}
}

func (v *Visit) listingURL() string {
	return v.state.ListURL
}

// add puts one copy of a movie in the cart.
func (v *Visit) add(movieID, title string, price float64) {
	v.dirty = true
	for i := range v.state.Cart {
		if v.state.Cart[i].MovieID == movieID {
			v.state.Cart[i].Quantity++
			return
		}
	}
	v.state.Cart = append(v.state.Cart, CartLine{MovieID: movieID, Title: title, Quantity: 1, Price: price})
}

// update applies a cart action. It reports false when the movie is not in the cart.
func (v *Visit) update(movieID, action string) bool {
	cart := v.state.Cart
	for i := range cart {
		if cart[i].MovieID != movieID {
			continue
		}
		switch action {
		case "increase":
			cart[i].Quantity++
		case "decrease":
			cart[i].Quantity--
		case "remove":
			cart[i].Quantity = 0
		}
		if cart[i].Quantity <= 0 {
			v.state.Cart = append(cart[:i], cart[i+1:]...)
		}
		v.dirty = true
		return true
	}
	return false
}

func (v *Visit) lines() []CartLine {
	return v.state.Cart
}

// checkout empties the cart and remembers order as the last one placed.
func (v *Visit) checkout(order *dto.OrderDetails) {
	v.state.Cart = nil
	v.state.LastOrder = order
	v.dirty = true
}

func (v *Visit) order() *dto.OrderDetails {
	return v.state.LastOrder
}

// Sessions issues session cookies and loads each request's Visit.
type Sessions struct {
	store *session.Store
}

// NewSessions creates a session store. A nil storage keeps sessions in memory.
func NewSessions(expiration time.Duration, storage fiber.Storage) *Sessions {
	return &Sessions{
		store: session.New(session.Config{
			Expiration:     expiration,
			Storage:        storage,
			KeyLookup:      "cookie:JSESSIONID",
			CookiePath:     "/",
			CookieHTTPOnly: true,
		}),
	}
}

// Handler loads the session for every request and saves it afterwards.
func (s *Sessions) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.store.Get(c)
		if err != nil {
			return err
		}
		visit := &Visit{}
		if state, ok := sess.Get(keyVisit).(VisitState); ok {
			visit.state = state
		}
		c.Locals(localsSession, sess)
		c.Locals(localsVisit, visit)

		err = c.Next()

		if ended, _ := c.Locals(localsEnded).(bool); ended {
			return err
		}
		if visit.dirty {
			sess.Set(keyVisit, visit.state)
		}
		if saveErr := sess.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
		return err
	}
}

// End destroys the current session.
func (s *Sessions) End(c *fiber.Ctx) error {
	c.Locals(localsEnded, true)
	return sessionOf(c).Destroy()
}

// RequireCustomer rejects requests from sessions without a customer login.
func (s *Sessions) RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email, _ := sessionOf(c).Get(keyCustomerEmail).(string); email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "User not logged in",
				Code:  "NOT_LOGGED_IN",
			})
		}
		return c.Next()
	}
}

// RequireEmployee rejects requests from sessions without an employee login.
func (s *Sessions) RequireEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email, _ := sessionOf(c).Get(keyEmployeeEmail).(string); email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.DashboardResponse{
				Message: "Unauthorized. Please log in as an employee.",
			})
		}
		return c.Next()
	}
}

func sessionOf(c *fiber.Ctx) *session.Session {
	return c.Locals(localsSession).(*session.Session)
}

func visitOf(c *fiber.Ctx) *Visit {
	return c.Locals(localsVisit).(*Visit)
}
