package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/repository/snapshot"
	"reelcraft-storefront/internal/shopify"
)

// Manager hands out one Store per storefront session, rehydrating from
// the persisted snapshot on first use. The process is the sole writer of
// each snapshot, so in-memory stores are authoritative once loaded.
type Manager struct {
	api       *shopify.Client
	snapshots snapshot.Repository
	logger    *log.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(api *shopify.Client, snapshots snapshot.Repository, logger *log.Logger) *Manager {
	return &Manager{
		api:       api,
		snapshots: snapshots,
		logger:    logger,
		stores:    make(map[string]*Store),
	}
}

// Get returns the session's store, loading its snapshot the first time.
// A missing or unreadable snapshot yields a fresh empty cart.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return store
	}
	m.mu.Unlock()

	snap, err := m.snapshots.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		m.logger.Printf("load snapshot for session %s: %v", sessionID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewStore(m.api, m.snapshots, m.logger, sessionID, snap)
	m.stores[sessionID] = store
	return store
}
