// Package order implements the direct (cash-on-delivery) order path. It
// bypasses the mirrored cart entirely: one validated request, one atomic
// remote order creation, one result.
package order

import (
	"context"
	"fmt"
	"strings"

	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/rewards"
	"reelcraft-storefront/internal/shopify"
)

type orderAPI interface {
	CreateOrder(ctx context.Context, in domain.DirectOrder) (*domain.DirectOrderResult, error)
}

type Service struct {
	api orderAPI
}

func New(api *shopify.AdminClient) *Service {
	return &Service{api: api}
}

// SubmitInput is one direct-order submission: customer, main item and any
// interactively selected add-ons, all bundled into the same request.
type SubmitInput struct {
	Customer domain.OrderCustomer `json:"customer"`
	Items    []domain.OrderItem   `json:"items"`
	Note     string               `json:"note,omitempty"`
}

// Submit validates locally, then sends the whole item list as one atomic
// order-creation request. Validation failures never reach the network.
// The discount code is derived from the items' subtotal via the reward
// tiers. Cart state is never touched.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.DirectOrderResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	subtotal, err := itemsSubtotal(in.Items)
	if err != nil {
		return nil, err
	}

	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = "COD Order via Reelcraft.store"
	}

	return s.api.CreateOrder(ctx, domain.DirectOrder{
		Customer:     in.Customer,
		Items:        in.Items,
		Note:         note,
		DiscountCode: rewards.DiscountCodeFor(subtotal),
	})
}

// indianStates are the accepted values for the province field.
var indianStates = map[string]bool{
	"Andhra Pradesh": true, "Arunachal Pradesh": true, "Assam": true,
	"Bihar": true, "Chhattisgarh": true, "Goa": true, "Gujarat": true,
	"Haryana": true, "Himachal Pradesh": true, "Jharkhand": true,
	"Karnataka": true, "Kerala": true, "Madhya Pradesh": true,
	"Maharashtra": true, "Manipur": true, "Meghalaya": true,
	"Mizoram": true, "Nagaland": true, "Odisha": true, "Punjab": true,
	"Rajasthan": true, "Sikkim": true, "Tamil Nadu": true,
	"Telangana": true, "Tripura": true, "Uttar Pradesh": true,
	"Uttarakhand": true, "West Bengal": true, "Delhi": true,
	"Jammu and Kashmir": true, "Ladakh": true,
}

func validate(in SubmitInput) error {
	c := in.Customer
	required := []struct {
		field, value string
	}{
		{"firstName", c.FirstName},
		{"phone", c.Phone},
		{"address1", c.Address1},
		{"city", c.City},
		{"province", c.Province},
		{"zip", c.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &domain.ValidationError{Field: r.field, Message: r.field + " is required"}
		}
	}
	if digitCount(c.Phone) < 10 {
		return domain.ErrInvalidPhone
	}
	if digitCount(c.Zip) != 6 {
		return domain.ErrInvalidPostalCode
	}
	if !indianStates[strings.TrimSpace(c.Province)] {
		return &domain.ValidationError{Field: "province", Message: "province must be an Indian state"}
	}
	if len(in.Items) == 0 {
		return &domain.ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for _, item := range in.Items {
		if item.VariantID == "" {
			return &domain.ValidationError{Field: "items", Message: "item variant id is required"}
		}
		if item.Quantity < 1 {
			return &domain.ValidationError{Field: "items", Message: "item quantity must be at least 1"}
		}
	}
	return nil
}

func itemsSubtotal(items []domain.OrderItem) (int64, error) {
	var subtotal int64
	for _, item := range items {
		cents, err := domain.ParseCents(item.Price)
		if err != nil {
			return 0, &domain.ValidationError{Field: "items", Message: fmt.Sprintf("item price %q is not a decimal amount", item.Price)}
		}
		subtotal += cents * int64(item.Quantity)
	}
	return subtotal, nil
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
