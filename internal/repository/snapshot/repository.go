package snapshot

import (
	"context"

	"reelcraft-storefront/internal/domain"
)

// Repository persists the minimal cart snapshot per storefront session.
// Load returns domain.ErrNotFound when no snapshot exists yet.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*domain.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
