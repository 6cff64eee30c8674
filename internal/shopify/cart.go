package shopify

import (
	"context"

	"reelcraft-storefront/internal/domain"
)

const cartQuery = `query cart($id: ID!) { cart(id: $id) { id totalQuantity } }`

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id checkoutUrl
      lines(first: 100) { edges { node { id merchandise { ... on ProductVariant { id } } } } }
    }
    userErrors { field message }
  }
}`

const cartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { id lines(first: 100) { edges { node { id merchandise { ... on ProductVariant { id } } } } } }
    userErrors { field message }
  }
}`

const cartLinesUpdateMutation = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) { cart { id } userErrors { field message } }
}`

const cartLinesRemoveMutation = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) { cart { id } userErrors { field message } }
}`

type cartLineEdges struct {
	Edges []struct {
		Node struct {
			ID          string `json:"id"`
			Merchandise struct {
				ID string `json:"id"`
			} `json:"merchandise"`
		} `json:"node"`
	} `json:"edges"`
}

// CreatedCart is the result of creating a remote cart with its first line.
type CreatedCart struct {
	CartID      string
	CheckoutURL string
	LineID      string
}

// CreateCart creates the remote cart with exactly one initial line and
// returns its coordinates plus the remote id of that line.
func (c *Client) CreateCart(ctx context.Context, variantID string, quantity int) (*CreatedCart, error) {
	const op = "cart create"
	var out struct {
		CartCreate struct {
			Cart *struct {
				ID          string        `json:"id"`
				CheckoutURL string        `json:"checkoutUrl"`
				Lines       cartLineEdges `json:"lines"`
			} `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartCreate"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"lines": []map[string]interface{}{{"quantity": quantity, "merchandiseId": variantID}},
		},
	}
	if err := c.execute(ctx, op, cartCreateMutation, vars, &out); err != nil {
		return nil, err
	}
	if err := userErrorsToRemote(op, out.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	cart := out.CartCreate.Cart
	if cart == nil || cart.CheckoutURL == "" || len(cart.Lines.Edges) == 0 {
		return nil, remoteErr(op, []string{"cart was not returned"})
	}
	return &CreatedCart{
		CartID:      cart.ID,
		CheckoutURL: cart.CheckoutURL,
		LineID:      cart.Lines.Edges[0].Node.ID,
	}, nil
}

// AddLine adds a variant to an existing remote cart and returns the
// remote id of the new line.
func (c *Client) AddLine(ctx context.Context, cartID, variantID string, quantity int) (string, error) {
	const op = "cart add line"
	var out struct {
		CartLinesAdd struct {
			Cart *struct {
				ID    string        `json:"id"`
				Lines cartLineEdges `json:"lines"`
			} `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{
		"cartId": cartID,
		"lines":  []map[string]interface{}{{"quantity": quantity, "merchandiseId": variantID}},
	}
	if err := c.execute(ctx, op, cartLinesAddMutation, vars, &out); err != nil {
		return "", err
	}
	if err := userErrorsToRemote(op, out.CartLinesAdd.UserErrors); err != nil {
		return "", err
	}
	if out.CartLinesAdd.Cart != nil {
		for _, edge := range out.CartLinesAdd.Cart.Lines.Edges {
			if edge.Node.Merchandise.ID == variantID {
				return edge.Node.ID, nil
			}
		}
	}
	return "", nil
}

// UpdateLine sets the quantity of an existing remote line.
func (c *Client) UpdateLine(ctx context.Context, cartID, lineID string, quantity int) error {
	const op = "cart update line"
	var out struct {
		CartLinesUpdate struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesUpdate"`
	}
	vars := map[string]interface{}{
		"cartId": cartID,
		"lines":  []map[string]interface{}{{"id": lineID, "quantity": quantity}},
	}
	if err := c.execute(ctx, op, cartLinesUpdateMutation, vars, &out); err != nil {
		return err
	}
	return userErrorsToRemote(op, out.CartLinesUpdate.UserErrors)
}

// RemoveLine deletes a remote line.
func (c *Client) RemoveLine(ctx context.Context, cartID, lineID string) error {
	const op = "cart remove line"
	var out struct {
		CartLinesRemove struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesRemove"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lineIds": []string{lineID}}
	if err := c.execute(ctx, op, cartLinesRemoveMutation, vars, &out); err != nil {
		return err
	}
	return userErrorsToRemote(op, out.CartLinesRemove.UserErrors)
}

// CartTotalQuantity reads the remote cart's total quantity. A missing
// cart comes back as domain.ErrNotFound rather than an error message.
func (c *Client) CartTotalQuantity(ctx context.Context, cartID string) (int, error) {
	const op = "cart read"
	var out struct {
		Cart *struct {
			ID            string `json:"id"`
			TotalQuantity int    `json:"totalQuantity"`
		} `json:"cart"`
	}
	if err := c.execute(ctx, op, cartQuery, map[string]interface{}{"id": cartID}, &out); err != nil {
		return 0, err
	}
	if out.Cart == nil {
		return 0, domain.ErrNotFound
	}
	return out.Cart.TotalQuantity, nil
}
