package shopify

import (
	"context"

	"reelcraft-storefront/internal/domain"
)

const productsQuery = `
query products($first: Int!, $query: String) {
  products(first: $first, query: $query) {
    edges {
      node {
        id title handle description productType
        images(first: 5) { edges { node { url altText } } }
        priceRange { minVariantPrice { amount currencyCode } }
        variants(first: 25) {
          edges {
            node {
              id title availableForSale
              price { amount currencyCode }
              selectedOptions { name value }
            }
          }
        }
      }
    }
  }
}`

const productByHandleQuery = `
query productByHandle($handle: String!) {
  product(handle: $handle) {
    id title handle description productType
    images(first: 10) { edges { node { url altText } } }
    priceRange { minVariantPrice { amount currencyCode } }
    variants(first: 25) {
      edges {
        node {
          id title availableForSale
          price { amount currencyCode }
          selectedOptions { name value }
        }
      }
    }
  }
}`

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	ProductType string `json:"productType"`
	Images      struct {
		Edges []struct {
			Node domain.Image `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	PriceRange struct {
		MinVariantPrice domain.Money `json:"minVariantPrice"`
	} `json:"priceRange"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID               string                  `json:"id"`
				Title            string                  `json:"title"`
				AvailableForSale bool                    `json:"availableForSale"`
				Price            domain.Money            `json:"price"`
				SelectedOptions  []domain.SelectedOption `json:"selectedOptions"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Description: n.Description,
		ProductType: n.ProductType,
		MinPrice:    n.PriceRange.MinVariantPrice,
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node)
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, domain.Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			Price:            e.Node.Price,
			AvailableForSale: e.Node.AvailableForSale,
			SelectedOptions:  e.Node.SelectedOptions,
		})
	}
	return p
}

// Products returns one page of the catalog. query optionally narrows by
// the platform's search syntax, e.g. "product_type:Jewellery Box".
func (c *Client) Products(ctx context.Context, first int, query string) ([]domain.Product, error) {
	const op = "catalog list"
	if first <= 0 {
		first = 20
	}
	var out struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	vars := map[string]interface{}{"first": first}
	if query != "" {
		vars["query"] = query
	}
	if err := c.execute(ctx, op, productsQuery, vars, &out); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(out.Products.Edges))
	for _, e := range out.Products.Edges {
		products = append(products, e.Node.toDomain())
	}
	return products, nil
}

// ProductByHandle fetches a single product, or domain.ErrNotFound.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	const op = "catalog get"
	var out struct {
		Product *productNode `json:"product"`
	}
	if err := c.execute(ctx, op, productByHandleQuery, map[string]interface{}{"handle": handle}, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, domain.ErrNotFound
	}
	p := out.Product.toDomain()
	return &p, nil
}
