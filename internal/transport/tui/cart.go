package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"movie-storefront/internal/app/service"
	"movie-storefront/internal/domain"
)

// cartScreen is the shopping cart.
type cartScreen struct {
	env
	loaded  bool
	cart    service.CartView
	cursor  int
	failed  bool
	confirm string // movie id awaiting removal confirmation
}

func newCartScreen(e env) *cartScreen {
	return &cartScreen{env: e}
}

func (s *cartScreen) title() string { return "Shopping Cart" }

func (s *cartScreen) capturing() bool { return s.confirm != "" }

func (s *cartScreen) init() tea.Cmd {
	cart, ctx := s.deps.Cart, s.ctx
	return func() tea.Msg {
		view, err := cart.Load(ctx)
		return cartLoadedMsg{view: view, err: err}
	}
}

func (s *cartScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		s.loaded = true
		s.cart, s.failed = msg.view, msg.err != nil
		s.cursor = min(s.cursor, max(len(s.cart.Lines)-1, 0))
		return nil

	case cartUpdatedMsg:
		if msg.err != nil {
			if cmd, ok := loginRequired(msg.err); ok {
				return cmd
			}
			return flash(service.UpdateFailureMessage(msg.err), true)
		}
		return s.init()

	case tea.KeyMsg:
		if s.confirm != "" {
			return s.confirmKeys(msg)
		}
		line, hasLine := s.currentLine()

		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.cart.Lines)-1, 0))
		case "+", "=":
			if hasLine {
				return s.change(func(svc *service.CartService) error {
					return svc.Increase(s.ctx, line.MovieID)
				})
			}
		case "-":
			if hasLine {
				if line.Quantity <= 1 {
					s.confirm = line.MovieID
					return nil
				}
				return s.change(func(svc *service.CartService) error {
					return svc.Decrease(s.ctx, line.MovieID, line.Quantity, false)
				})
			}
		case "x", "delete":
			if hasLine {
				s.confirm = line.MovieID
			}
		case "p":
			if !s.cart.IsEmpty() {
				return navigate(domain.Location{Page: domain.PagePayment})
			}
		case "m", "b":
			return navigate(domain.Location{Page: domain.PageMovies})
		}
	}
	return nil
}

func (s *cartScreen) confirmKeys(msg tea.KeyMsg) tea.Cmd {
	id := s.confirm
	switch msg.String() {
	case "y", "enter":
		s.confirm = ""
		return s.change(func(svc *service.CartService) error {
			return svc.Remove(s.ctx, id, true)
		})
	case "n", "esc":
		s.confirm = ""
	}
	return nil
}

func (s *cartScreen) change(apply func(*service.CartService) error) tea.Cmd {
	svc := s.deps.Cart
	return func() tea.Msg {
		return cartUpdatedMsg{err: apply(svc)}
	}
}

func (s *cartScreen) currentLine() (service.CartLine, bool) {
	if s.cursor < 0 || s.cursor >= len(s.cart.Lines) {
		return service.CartLine{}, false
	}
	return s.cart.Lines[s.cursor], true
}

func (s *cartScreen) help() string {
	if s.confirm != "" {
		return "y remove  n keep"
	}
	return "↑/↓ move  +/- quantity  x remove  p proceed to payment  m movies"
}

func (s *cartScreen) view(int) string {
	if !s.loaded {
		return loadingStyle.Render("Loading cart...") + "\n"
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(
		cell("Title", 36) + cell("Quantity", 10) + cell("Price", 10) + cell("Subtotal", 10),
	) + "\n")

	if s.cart.Message != "" {
		b.WriteString(s.cart.Message + "\n")
	}
	for i, line := range s.cart.Lines {
		row := cell(line.Title, 36) +
			cell(fmt.Sprintf("- %d +", line.Quantity), 10) +
			cell("$"+formatMoney(line.Price), 10) +
			cell("$"+formatMoney(line.Subtotal), 10)
		if i == s.cursor {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}

	total := formatMoney(s.cart.Total)
	if s.failed {
		total = "Error"
	}
	b.WriteString("\n" + labelStyle.Render("Total: $") + total + "\n")

	if s.confirm != "" {
		b.WriteString("\n" + modalStyle.Render(service.RemoveConfirmation+"  [y/n]") + "\n")
	}
	return b.String()
}

// Payment form fields.
const (
	fieldFirstName = iota
	fieldLastName
	fieldCCNumber
	fieldCCExpiry
)

// paymentScreen is the checkout form.
type paymentScreen struct {
	env
	form       form
	total      string
	message    string
	submitting bool
}

func newPaymentScreen(e env) *paymentScreen {
	return &paymentScreen{
		env:  e,
		form: newForm("First Name", "Last Name", "Credit Card Number", "Expiration Date (YYYY-MM-DD)"),
	}
}

func (s *paymentScreen) title() string { return "Payment" }

func (s *paymentScreen) capturing() bool { return true }

func (s *paymentScreen) init() tea.Cmd {
	checkout, ctx := s.deps.Checkout, s.ctx
	load := func() tea.Msg {
		total, err := checkout.Total(ctx)
		return totalLoadedMsg{total: total, err: err}
	}
	return tea.Batch(load, s.form.activate())
}

func (s *paymentScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case totalLoadedMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		if msg.err != nil {
			s.total = "Error"
			return nil
		}
		s.total = formatMoney(msg.total)
		return nil

	case orderPlacedMsg:
		s.submitting = false
		if msg.err != nil {
			if cmd, ok := loginRequired(msg.err); ok {
				return cmd
			}
			s.message = msg.message
			return nil
		}
		return replaceWith(domain.Location{Page: domain.PageConfirmation})

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navigate(domain.Location{Page: domain.PageCart})
		case "tab", "down":
			return s.form.move(1)
		case "shift+tab", "up":
			return s.form.move(-1)
		case "enter":
			if s.form.focus < fieldCCExpiry {
				return s.form.move(1)
			}
			return s.submit()
		}
	}
	return s.form.update(msg)
}

func (s *paymentScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	s.message = ""

	checkout, ctx := s.deps.Checkout, s.ctx
	payment := domain.PaymentForm{
		FirstName: s.form.value(fieldFirstName),
		LastName:  s.form.value(fieldLastName),
		CCNumber:  s.form.value(fieldCCNumber),
		CCExpiry:  s.form.value(fieldCCExpiry),
	}
	return func() tea.Msg {
		message, err := checkout.PlaceOrder(ctx, payment)
		return orderPlacedMsg{message: message, err: err}
	}
}

func (s *paymentScreen) help() string {
	return "tab next field  enter place order  esc back to cart"
}

func (s *paymentScreen) view(int) string {
	var b strings.Builder
	total := s.total
	if total == "" {
		total = "..."
	}
	b.WriteString(labelStyle.Render("Total Price: $") + total + "\n\n")
	b.WriteString(s.form.view())
	if s.submitting {
		b.WriteString(loadingStyle.Render("Processing payment...") + "\n")
	}
	if s.message != "" {
		b.WriteString(errorStyle.Render(s.message) + "\n")
	}
	return b.String()
}

// confirmationScreen shows the order just placed.
type confirmationScreen struct {
	env
	loaded bool
	order  service.ConfirmationView
}

func newConfirmationScreen(e env) *confirmationScreen {
	return &confirmationScreen{env: e}
}

func (s *confirmationScreen) title() string { return "Order Confirmation" }

func (s *confirmationScreen) capturing() bool { return false }

func (s *confirmationScreen) init() tea.Cmd {
	checkout, ctx := s.deps.Checkout, s.ctx
	return func() tea.Msg {
		view, err := checkout.Confirmation(ctx)
		return confirmationLoadedMsg{view: view, err: err}
	}
}

func (s *confirmationScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case confirmationLoadedMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		s.loaded = true
		s.order = msg.view
	case tea.KeyMsg:
		if msg.String() == "m" || msg.String() == "enter" {
			return navigate(domain.Location{Page: domain.PageMovies})
		}
	}
	return nil
}

func (s *confirmationScreen) help() string {
	return "m continue shopping"
}

func (s *confirmationScreen) view(int) string {
	if !s.loaded {
		return loadingStyle.Render("Loading order details...") + "\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Thank you for your order!") + "\n")
	b.WriteString(labelStyle.Render("Sale ID(s): ") + s.order.SaleIDs + "\n\n")
	b.WriteString(tableHeaderStyle.Render(
		cell("Title", 36)+cell("Quantity", 10)+cell("Price", 10)+cell("Subtotal", 10),
	) + "\n")
	if s.order.Message != "" {
		b.WriteString(s.order.Message + "\n")
	}
	for _, line := range s.order.Lines {
		b.WriteString(cell(line.Title, 36) +
			cell(fmt.Sprint(line.Quantity), 10) +
			cell("$"+formatMoney(line.Price), 10) +
			cell("$"+formatMoney(line.Subtotal), 10) + "\n")
	}
	b.WriteString("\n" + labelStyle.Render("Total Price: $") + s.order.Total + "\n")
	return b.String()
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
