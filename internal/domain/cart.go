package domain

// SelectedOption is one (name, value) pair that distinguishes a variant,
// e.g. ("Color", "Gold"). Order is preserved for display.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CartLine is one merchandise variant mirrored into the remote cart.
// RemoteLineID stays empty until the first successful remote write for
// the line.
type CartLine struct {
	RemoteLineID    string           `json:"remoteLineId,omitempty"`
	VariantID       string           `json:"variantId"`
	VariantTitle    string           `json:"variantTitle,omitempty"`
	ProductTitle    string           `json:"productTitle"`
	ProductHandle   string           `json:"productHandle,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	UnitPriceCents  int64            `json:"unitPriceCents"`
	Currency        string           `json:"currency"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}

// CartSnapshot is the minimal persisted view of the cart: the lines plus
// the remote cart coordinates. Transient flags are never part of it.
type CartSnapshot struct {
	Lines        []CartLine `json:"lines"`
	RemoteCartID string     `json:"remoteCartId,omitempty"`
	CheckoutURL  string     `json:"checkoutUrl,omitempty"`
}

// Subtotal sums quantity * unit price across all lines.
func (s CartSnapshot) Subtotal() int64 {
	var total int64
	for _, line := range s.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	return total
}

// TotalQuantity sums line quantities.
func (s CartSnapshot) TotalQuantity() int {
	total := 0
	for _, line := range s.Lines {
		total += line.Quantity
	}
	return total
}
