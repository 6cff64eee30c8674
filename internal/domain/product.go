package domain

// Product is the catalog shape returned by the remote platform's
// read-only query surface. Prices stay in their transported decimal-string
// form until something needs arithmetic on them.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description,omitempty"`
	ProductType string    `json:"productType,omitempty"`
	Images      []Image   `json:"images"`
	MinPrice    Money     `json:"minPrice"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Money is a decimal amount plus ISO currency code as transported on the
// wire.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Variant is one purchasable configuration of a product.
type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Price            Money            `json:"price"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}
