package order

import (
	"context"
	"errors"
	"testing"

	"reelcraft-storefront/internal/domain"
)

type stubOrderAPI struct {
	result *domain.DirectOrderResult
	err    error
	calls  int
	last   domain.DirectOrder
}

func (s *stubOrderAPI) CreateOrder(_ context.Context, in domain.DirectOrder) (*domain.DirectOrderResult, error) {
	s.calls++
	s.last = in
	return s.result, s.err
}

func validInput() SubmitInput {
	return SubmitInput{
		Customer: domain.OrderCustomer{
			FirstName: "Asha",
			Phone:     "98765 43210",
			Address1:  "12 MG Road",
			City:      "Bengaluru",
			Province:  "Karnataka",
			Zip:       "560001",
		},
		Items: []domain.OrderItem{
			{VariantID: "gid://shopify/ProductVariant/42", Quantity: 1, Title: "Gold Hoops", Price: "499.00"},
		},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	api := &stubOrderAPI{result: &domain.DirectOrderResult{OrderID: 1, OrderNumber: 1001, OrderName: "#1001", TotalPrice: "449.00"}}
	svc := &Service{api: api}

	result, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderName != "#1001" {
		t.Fatalf("unexpected result %+v", result)
	}
	// Subtotal 499.00 sits in tier 1, so the tier-1 code travels along.
	if api.last.DiscountCode != "COD50" {
		t.Fatalf("expected COD50 discount code, got %q", api.last.DiscountCode)
	}
	if api.last.Note == "" {
		t.Fatal("expected a default note")
	}
}

func TestSubmitBundlesAddOnsAtomically(t *testing.T) {
	api := &stubOrderAPI{result: &domain.DirectOrderResult{OrderName: "#1002"}}
	svc := &Service{api: api}

	in := validInput()
	in.Items = append(in.Items,
		domain.OrderItem{VariantID: "gid://shopify/ProductVariant/43", Quantity: 1, Title: "Pendant", Price: "299.00"},
		domain.OrderItem{VariantID: "gid://shopify/ProductVariant/44", Quantity: 2, Title: "Studs", Price: "199.00"},
	)
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.calls != 1 {
		t.Fatalf("expected one atomic request, got %d", api.calls)
	}
	if len(api.last.Items) != 3 {
		t.Fatalf("expected all items in the one request, got %d", len(api.last.Items))
	}
	// 499 + 299 + 2*199 = 1196, tier 2.
	if api.last.DiscountCode != "COD100" {
		t.Fatalf("expected COD100 at tier 2, got %q", api.last.DiscountCode)
	}
}

func TestSubmitShortPostalCodeRejectedLocally(t *testing.T) {
	api := &stubOrderAPI{}
	svc := &Service{api: api}

	in := validInput()
	in.Customer.Zip = "56001"
	_, err := svc.Submit(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidPostalCode) {
		t.Fatalf("expected ErrInvalidPostalCode, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("validation failures must make zero network calls, got %d", api.calls)
	}
}

func TestSubmitShortPhoneRejectedLocally(t *testing.T) {
	api := &stubOrderAPI{}
	svc := &Service{api: api}

	in := validInput()
	in.Customer.Phone = "12345"
	_, err := svc.Submit(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if api.calls != 0 {
		t.Fatal("validation failures must make zero network calls")
	}
}

func TestSubmitPhoneWithSeparatorsAccepted(t *testing.T) {
	api := &stubOrderAPI{result: &domain.DirectOrderResult{}}
	svc := &Service{api: api}

	in := validInput()
	in.Customer.Phone = "+91 98765-43210"
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("separators must not fail the digit check: %v", err)
	}
}

func TestSubmitMissingRequiredFields(t *testing.T) {
	for _, field := range []string{"firstName", "phone", "address1", "city", "province", "zip"} {
		in := validInput()
		switch field {
		case "firstName":
			in.Customer.FirstName = "  "
		case "phone":
			in.Customer.Phone = ""
		case "address1":
			in.Customer.Address1 = ""
		case "city":
			in.Customer.City = ""
		case "province":
			in.Customer.Province = ""
		case "zip":
			in.Customer.Zip = ""
		}
		api := &stubOrderAPI{}
		svc := &Service{api: api}
		_, err := svc.Submit(context.Background(), in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("field %s: expected validation error, got %v", field, err)
		}
		if api.calls != 0 {
			t.Fatalf("field %s: expected zero network calls", field)
		}
	}
}

func TestSubmitUnknownProvince(t *testing.T) {
	in := validInput()
	in.Customer.Province = "Atlantis"
	svc := &Service{api: &stubOrderAPI{}}
	var ve *domain.ValidationError
	if _, err := svc.Submit(context.Background(), in); !errors.As(err, &ve) || ve.Field != "province" {
		t.Fatalf("expected province validation error, got %v", err)
	}
}

func TestSubmitRemoteErrorSurfaced(t *testing.T) {
	api := &stubOrderAPI{err: &domain.RemoteError{Op: "order create", Messages: []string{"variant not found"}}}
	svc := &Service{api: api}
	_, err := svc.Submit(context.Background(), validInput())
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected remote error surfaced, got %v", err)
	}
}

func TestSubmitEmptyItems(t *testing.T) {
	in := validInput()
	in.Items = nil
	svc := &Service{api: &stubOrderAPI{}}
	var ve *domain.ValidationError
	if _, err := svc.Submit(context.Background(), in); !errors.As(err, &ve) || ve.Field != "items" {
		t.Fatalf("expected items validation error, got %v", err)
	}
}
