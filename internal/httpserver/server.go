package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"reelcraft-storefront/internal/service/cart"
	"reelcraft-storefront/internal/service/order"
	"reelcraft-storefront/internal/shopify"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router exposes.
type Deps struct {
	Catalog *shopify.Client
	Carts   *cart.Manager
	Orders  *order.Service
	Origins []string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with the storefront routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
