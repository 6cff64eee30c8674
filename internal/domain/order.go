package domain

// OrderCustomer carries the contact and shipping fields collected for a
// direct (cash-on-delivery) order.
type OrderCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country,omitempty"`
}

// OrderItem is one (variant, quantity) entry of a direct order. Price and
// title travel along for display and subtotal computation only; the remote
// platform re-prices from the variant.
type OrderItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
	Title     string `json:"title"`
	Price     string `json:"price"`
}

// DirectOrder is one atomic order-creation request. It exists only for
// the duration of a single submission.
type DirectOrder struct {
	Customer     OrderCustomer
	Items        []OrderItem
	Note         string
	DiscountCode string
}

// DirectOrderResult is the remote platform's record of a created order,
// shown once to the customer.
type DirectOrderResult struct {
	OrderID     int64  `json:"orderId"`
	OrderNumber int    `json:"orderNumber"`
	OrderName   string `json:"orderName"`
	TotalPrice  string `json:"totalPrice"`
}
