package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Origins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(sessionMiddleware())

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:handle", getProductHandler(deps.Catalog))

	api.GET("/cart", getCartHandler(deps.Carts))
	// Variant ids are opaque gids with slashes in them, so line
	// addressing travels in the body or query, never the path.
	api.POST("/cart/items", addItemHandler(deps.Carts))
	api.PATCH("/cart/items", updateQuantityHandler(deps.Carts))
	api.DELETE("/cart/items", removeItemHandler(deps.Carts))
	api.POST("/cart/sync", syncCartHandler(deps.Carts))
	api.GET("/cart/checkout-url", checkoutURLHandler(deps.Carts))

	api.GET("/rewards", rewardsHandler)

	api.POST("/orders/cod", createOrderHandler(deps.Orders))
	api.GET("/orders/cod/addons", listAddonsHandler(deps.Catalog))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Session-ID")
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	return cfg
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
