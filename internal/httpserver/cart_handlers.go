package httpserver

import (
	"net/http"

	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/rewards"
	"reelcraft-storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	VariantID       string                  `json:"variantId" binding:"required"`
	VariantTitle    string                  `json:"variantTitle"`
	ProductTitle    string                  `json:"productTitle" binding:"required"`
	ProductHandle   string                  `json:"productHandle"`
	ImageURL        string                  `json:"imageUrl"`
	Price           domain.Money            `json:"price" binding:"required"`
	Quantity        int                     `json:"quantity"`
	SelectedOptions []domain.SelectedOption `json:"selectedOptions"`
}

type updateQuantityRequest struct {
	VariantID string `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Items       []domain.CartLine `json:"items"`
	CartID      string            `json:"cartId,omitempty"`
	CheckoutURL string            `json:"checkoutUrl,omitempty"`
	Busy        bool              `json:"busy"`
	Syncing     bool              `json:"syncing"`
	Totals      cart.Totals       `json:"totals"`
}

func cartToResponse(store *cart.Store) cartResponse {
	state := store.State()
	items := state.Lines
	if items == nil {
		items = []domain.CartLine{}
	}
	return cartResponse{
		Items:       items,
		CartID:      state.RemoteCartID,
		CheckoutURL: state.CheckoutURL,
		Busy:        store.Busy(),
		Syncing:     store.Syncing(),
		Totals:      store.Totals(),
	}
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Get(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartToResponse(store))
	}
}

func addItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		unitPrice, err := domain.ParseCents(req.Price.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price.amount must be a decimal string"})
			return
		}

		store := carts.Get(c.Request.Context(), sessionID(c))
		err = store.AddItem(c.Request.Context(), cart.AddInput{
			VariantID:       req.VariantID,
			VariantTitle:    req.VariantTitle,
			ProductTitle:    req.ProductTitle,
			ProductHandle:   req.ProductHandle,
			ImageURL:        req.ImageURL,
			UnitPriceCents:  unitPrice,
			Currency:        req.Price.CurrencyCode,
			Quantity:        req.Quantity,
			SelectedOptions: req.SelectedOptions,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartToResponse(store))
	}
}

func updateQuantityHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		store := carts.Get(c.Request.Context(), sessionID(c))
		if err := store.UpdateQuantity(c.Request.Context(), req.VariantID, req.Quantity); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartToResponse(store))
	}
}

func removeItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID := c.Query("variantId")
		if variantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "variantId query parameter required"})
			return
		}
		store := carts.Get(c.Request.Context(), sessionID(c))
		if err := store.RemoveItem(c.Request.Context(), variantID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartToResponse(store))
	}
}

func syncCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Get(c.Request.Context(), sessionID(c))
		if err := store.Sync(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartToResponse(store))
	}
}

// checkoutURLHandler hands off the hosted checkout URL together with the
// online-payment incentive, which applies only on this path.
func checkoutURLHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Get(c.Request.Context(), sessionID(c))
		url := store.CheckoutURL()
		if url == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active cart"})
			return
		}
		totals := store.Totals()
		bonus := rewards.OnlineBonus(totals.TotalCents)
		c.JSON(http.StatusOK, gin.H{
			"checkoutUrl":      url,
			"totalCents":       totals.TotalCents,
			"onlineBonusCents": bonus,
			"payableCents":     totals.TotalCents - bonus,
		})
	}
}
