package snapshot

import (
	"context"
	"encoding/json"
	"errors"

	"reelcraft-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) (*domain.CartSnapshot, error) {
	const q = `
SELECT payload
FROM cart_snapshots
WHERE session_id = $1
`
	var payload []byte
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *postgresRepo) Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO cart_snapshots (session_id, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
`
	_, err = r.pool.Exec(ctx, q, sessionID, payload)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	const q = `
DELETE FROM cart_snapshots
WHERE session_id = $1
`
	_, err := r.pool.Exec(ctx, q, sessionID)
	return err
}
