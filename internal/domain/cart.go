package domain

// CartAction is a shopping-cart update verb.
type CartAction string

const (
	CartIncrease CartAction = "increase"
	CartDecrease CartAction = "decrease"
	CartRemove   CartAction = "remove"
)

// CartItem is one line of the shopping cart.
type CartItem struct {
	MovieID  string
	Title    string
	Quantity int
	Price    float64
}

// Subtotal returns quantity times price.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// Cart is the session's shopping cart.
type Cart struct {
	Items []CartItem
	// TotalPrice is the server-computed total, used by the payment page.
	TotalPrice float64
}

// Total sums the line subtotals.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Quantity returns the quantity of movieID in the cart, or 0.
func (c Cart) Quantity(movieID string) int {
	for _, item := range c.Items {
		if item.MovieID == movieID {
			return item.Quantity
		}
	}
	return 0
}

// AddedItem describes a successful add-to-cart.
type AddedItem struct {
	ItemID    string
	ItemTitle string
}

// Name returns the title, or a "Movie ID" label when the server sent none.
func (a AddedItem) Name() string {
	if a.ItemTitle != "" {
		return a.ItemTitle
	}
	return "Movie ID " + a.ItemID
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	Title    string
	Quantity int
	Price    float64
}

// Subtotal returns quantity times price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// OrderConfirmation is the summary shown after a successful payment.
type OrderConfirmation struct {
	SaleIDs    []string
	Items      []OrderItem
	TotalPrice *float64
}

// TableMetadata lists the attributes of one database table on the employee dashboard.
type TableMetadata struct {
	Table      string
	Attributes []Attribute
}

// Attribute is a column name and type.
type Attribute struct {
	Name string
	Type string
}
