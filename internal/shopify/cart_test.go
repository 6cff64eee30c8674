package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reelcraft-storefront/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		httpClient:      srv.Client(),
		endpoint:        srv.URL,
		storefrontToken: "test-token",
	}, srv
}

func decodeRequest(t *testing.T, r *http.Request) graphqlRequest {
	t.Helper()
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req
}

func TestCreateCart(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Storefront-Access-Token"); got != "test-token" {
			t.Fatalf("missing storefront token, got %q", got)
		}
		req := decodeRequest(t, r)
		if !strings.Contains(req.Query, "cartCreate") {
			t.Fatalf("unexpected query: %s", req.Query)
		}
		w.Write([]byte(`{"data":{"cartCreate":{"cart":{
			"id":"gid://shopify/Cart/c1",
			"checkoutUrl":"https://shop.example/checkout/c1",
			"lines":{"edges":[{"node":{"id":"gid://shopify/CartLine/l1","merchandise":{"id":"gid://shopify/ProductVariant/7"}}}]}
		},"userErrors":[]}}}`))
	})

	created, err := client.CreateCart(context.Background(), "gid://shopify/ProductVariant/7", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CartID != "gid://shopify/Cart/c1" || created.LineID != "gid://shopify/CartLine/l1" {
		t.Fatalf("unexpected result %+v", created)
	}
	if created.CheckoutURL != "https://shop.example/checkout/c1" {
		t.Fatalf("unexpected checkout url %q", created.CheckoutURL)
	}
}

func TestCreateCartUserError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"cartCreate":{"cart":null,"userErrors":[{"field":null,"message":"Merchandise is out of stock"}]}}}`))
	})

	_, err := client.CreateCart(context.Background(), "gid://shopify/ProductVariant/7", 1)
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if re.CartNotFound {
		t.Fatal("out-of-stock must not read as cart-not-found")
	}
}

func TestAddLineReturnsMatchingLineID(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Variables["cartId"] != "gid://shopify/Cart/c1" {
			t.Fatalf("unexpected cartId %v", req.Variables["cartId"])
		}
		w.Write([]byte(`{"data":{"cartLinesAdd":{"cart":{"id":"gid://shopify/Cart/c1","lines":{"edges":[
			{"node":{"id":"gid://shopify/CartLine/l1","merchandise":{"id":"gid://shopify/ProductVariant/7"}}},
			{"node":{"id":"gid://shopify/CartLine/l2","merchandise":{"id":"gid://shopify/ProductVariant/9"}}}
		]}},"userErrors":[]}}}`))
	})

	lineID, err := client.AddLine(context.Background(), "gid://shopify/Cart/c1", "gid://shopify/ProductVariant/9", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lineID != "gid://shopify/CartLine/l2" {
		t.Fatalf("expected the line for the added variant, got %q", lineID)
	}
}

func TestUpdateLineCartNotFound(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"cartLinesUpdate":{"cart":null,"userErrors":[{"field":["cartId"],"message":"Cart not found"}]}}}`))
	})

	err := client.UpdateLine(context.Background(), "gid://shopify/Cart/gone", "gid://shopify/CartLine/l1", 3)
	if !domain.IsCartGone(err) {
		t.Fatalf("expected cart-gone sentinel, got %v", err)
	}
}

func TestCartTotalQuantity(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"cart":{"id":"gid://shopify/Cart/c1","totalQuantity":4}}}`))
	})
	qty, err := client.CartTotalQuantity(context.Background(), "gid://shopify/Cart/c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 4 {
		t.Fatalf("expected quantity 4, got %d", qty)
	}
}

func TestCartTotalQuantityMissingCart(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"cart":null}}`))
	})
	_, err := client.CartTotalQuantity(context.Background(), "gid://shopify/Cart/gone")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExecuteHTTPFailure(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	err := client.RemoveLine(context.Background(), "gid://shopify/Cart/c1", "gid://shopify/CartLine/l1")
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestExecuteGraphQLErrors(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"Throttled"}]}`))
	})
	err := client.UpdateLine(context.Background(), "gid://shopify/Cart/c1", "gid://shopify/CartLine/l1", 1)
	var re *domain.RemoteError
	if !errors.As(err, &re) || re.CartNotFound {
		t.Fatalf("expected plain remote error, got %v", err)
	}
}
