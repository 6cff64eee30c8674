package httpserver

import (
	"net/http"
	"strconv"

	"reelcraft-storefront/internal/shopify"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

func listProductsHandler(catalog *shopify.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		first := defaultPageSize
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				first = n
			}
		}
		products, err := catalog.Products(c.Request.Context(), first, c.Query("query"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(catalog *shopify.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.ProductByHandle(c.Request.Context(), c.Param("handle"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// listAddonsHandler returns up to three available products to offer as
// add-ons before a direct order, excluding the product being bought.
func listAddonsHandler(catalog *shopify.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Products(c.Request.Context(), 10, "")
		if err != nil {
			writeError(c, err)
			return
		}
		exclude := c.Query("exclude")
		addons := products[:0]
		for _, p := range products {
			if p.ID == exclude {
				continue
			}
			if len(p.Variants) == 0 || !p.Variants[0].AvailableForSale {
				continue
			}
			addons = append(addons, p)
			if len(addons) == 3 {
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{"products": addons})
	}
}
