package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reelcraft-storefront/internal/domain"
)

const variantGIDPrefix = "gid://shopify/ProductVariant/"

// AdminClient issues admin REST requests, used only for direct order
// creation.
type AdminClient struct {
	httpClient *http.Client
	ordersURL  string
	adminToken string
}

// NewAdmin builds an admin client from cfg.
func NewAdmin(cfg Config) *AdminClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &AdminClient{
		httpClient: &http.Client{Timeout: timeout},
		ordersURL:  fmt.Sprintf("%s/admin/api/%s/orders.json", cfg.baseURL(), cfg.APIVersion),
		adminToken: cfg.AdminToken,
	}
}

type adminAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

type adminLineItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type adminDiscountCode struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type adminOrderPayload struct {
	Order struct {
		LineItems []adminLineItem `json:"line_items"`
		Customer  struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Phone     string `json:"phone"`
			Email     string `json:"email,omitempty"`
		} `json:"customer"`
		ShippingAddress        adminAddress        `json:"shipping_address"`
		BillingAddress         adminAddress        `json:"billing_address"`
		FinancialStatus        string              `json:"financial_status"`
		Note                   string              `json:"note"`
		Tags                   string              `json:"tags"`
		SendReceipt            bool                `json:"send_receipt"`
		SendFulfillmentReceipt bool                `json:"send_fulfillment_receipt"`
		DiscountCodes          []adminDiscountCode `json:"discount_codes"`
	} `json:"order"`
}

// CreateOrder submits one atomic order-creation request carrying every
// line of in. It either all succeeds or all fails; there is no partial
// outcome.
func (c *AdminClient) CreateOrder(ctx context.Context, in domain.DirectOrder) (*domain.DirectOrderResult, error) {
	const op = "order create"

	var payload adminOrderPayload
	for _, item := range in.Items {
		variantID, err := variantNumericID(item.VariantID)
		if err != nil {
			return nil, remoteErr(op, []string{err.Error()})
		}
		payload.Order.LineItems = append(payload.Order.LineItems, adminLineItem{VariantID: variantID, Quantity: item.Quantity})
	}

	cust := in.Customer
	country := cust.Country
	if country == "" {
		country = "India"
	}
	addr := adminAddress{
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Address1:  cust.Address1,
		Address2:  cust.Address2,
		City:      cust.City,
		Province:  cust.Province,
		Zip:       cust.Zip,
		Country:   country,
		Phone:     cust.Phone,
	}
	payload.Order.Customer.FirstName = cust.FirstName
	payload.Order.Customer.LastName = cust.LastName
	payload.Order.Customer.Phone = cust.Phone
	payload.Order.Customer.Email = cust.Email
	payload.Order.ShippingAddress = addr
	payload.Order.BillingAddress = addr
	payload.Order.FinancialStatus = "pending"
	payload.Order.Note = in.Note
	payload.Order.Tags = "COD, Website-Direct"
	payload.Order.SendReceipt = cust.Email != ""
	payload.Order.SendFulfillmentReceipt = cust.Email != ""
	payload.Order.DiscountCodes = []adminDiscountCode{}
	if in.DiscountCode != "" {
		payload.Order.DiscountCodes = append(payload.Order.DiscountCodes, adminDiscountCode{Code: in.DiscountCode, Amount: "0", Type: "percentage"})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ordersURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.adminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(op, err)
	}

	var decoded struct {
		Order *struct {
			ID          int64  `json:"id"`
			OrderNumber int    `json:"order_number"`
			Name        string `json:"name"`
			TotalPrice  string `json:"total_price"`
		} `json:"order"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, transportErr(op, fmt.Errorf("decode response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || len(decoded.Errors) > 0 {
		return nil, remoteErr(op, []string{adminErrorMessage(decoded.Errors, resp.StatusCode)})
	}
	if decoded.Order == nil {
		return nil, remoteErr(op, []string{"order was not returned"})
	}
	return &domain.DirectOrderResult{
		OrderID:     decoded.Order.ID,
		OrderNumber: decoded.Order.OrderNumber,
		OrderName:   decoded.Order.Name,
		TotalPrice:  decoded.Order.TotalPrice,
	}, nil
}

// variantNumericID strips the global-id prefix the storefront surface
// uses; the admin surface wants the bare numeric id.
func variantNumericID(gid string) (int64, error) {
	id := strings.TrimPrefix(gid, variantGIDPrefix)
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("variant id %q is not an admin id", gid)
	}
	return n, nil
}

func adminErrorMessage(raw json.RawMessage, status int) string {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		return string(raw)
	}
	return fmt.Sprintf("order rejected with status %d", status)
}
