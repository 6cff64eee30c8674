// Package cart owns the client-side mirror of one remote cart resource.
// Each Store keeps the remote cart and the local line list in lockstep
// across add/update/remove, heals itself when the remote cart disappears,
// and persists a minimal snapshot after every successful change.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"sync/atomic"

	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/rewards"
	"reelcraft-storefront/internal/shopify"
)

// checkoutChannel tags hosted-checkout traffic before the URL is handed
// to the browser.
const checkoutChannel = "online_store"

type cartAPI interface {
	CreateCart(ctx context.Context, variantID string, quantity int) (*shopify.CreatedCart, error)
	AddLine(ctx context.Context, cartID, variantID string, quantity int) (string, error)
	UpdateLine(ctx context.Context, cartID, lineID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, lineID string) error
	CartTotalQuantity(ctx context.Context, cartID string) (int, error)
}

type snapshotStore interface {
	Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// Store is the single-writer cart state for one storefront session.
// Mutating operations serialize on mu, held across the remote call, so a
// reader never observes a line without its remote id mid-flight. Sync has
// its own in-flight guard and is a no-op while one is already running.
type Store struct {
	api       cartAPI
	snapshots snapshotStore
	logger    *log.Logger
	sessionID string

	mu      sync.Mutex
	state   domain.CartSnapshot
	busy    atomic.Bool
	syncing atomic.Bool
}

// NewStore builds a Store seeded from a previously persisted snapshot,
// or empty when snap is nil. Transient flags always start cleared.
func NewStore(api *shopify.Client, snapshots snapshotStore, logger *log.Logger, sessionID string, snap *domain.CartSnapshot) *Store {
	s := &Store{api: api, snapshots: snapshots, logger: logger, sessionID: sessionID}
	if snap != nil {
		s.state = *snap
	}
	return s
}

// AddInput describes the variant being added, with its display snapshot
// captured at add time.
type AddInput struct {
	VariantID       string
	VariantTitle    string
	ProductTitle    string
	ProductHandle   string
	ImageURL        string
	UnitPriceCents  int64
	Currency        string
	Quantity        int
	SelectedOptions []domain.SelectedOption
}

// AddItem mirrors an add into the remote cart. With no remote cart yet it
// creates one with this single line; with the variant already present it
// sums quantities into one update; otherwise it adds a new remote line.
// At most one line per variant ever exists.
func (s *Store) AddItem(ctx context.Context, in AddInput) error {
	if in.VariantID == "" {
		return &domain.ValidationError{Field: "variantId", Message: "variant id required"}
	}
	if in.Quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	if s.state.RemoteCartID == "" {
		created, err := s.api.CreateCart(ctx, in.VariantID, in.Quantity)
		if err != nil {
			return err
		}
		s.state = domain.CartSnapshot{
			Lines:        []domain.CartLine{lineFromInput(in, created.LineID)},
			RemoteCartID: created.CartID,
			CheckoutURL:  tagCheckoutURL(created.CheckoutURL),
		}
		s.persist(ctx)
		return nil
	}

	if existing := s.findLine(in.VariantID); existing != nil {
		if existing.RemoteLineID == "" {
			return fmt.Errorf("variant %s has no remote line: %w", in.VariantID, domain.ErrNotFound)
		}
		newQuantity := existing.Quantity + in.Quantity
		if err := s.api.UpdateLine(ctx, s.state.RemoteCartID, existing.RemoteLineID, newQuantity); err != nil {
			return s.healOrFail(ctx, err)
		}
		existing.Quantity = newQuantity
		s.persist(ctx)
		return nil
	}

	lineID, err := s.api.AddLine(ctx, s.state.RemoteCartID, in.VariantID, in.Quantity)
	if err != nil {
		return s.healOrFail(ctx, err)
	}
	s.state.Lines = append(s.state.Lines, lineFromInput(in, lineID))
	s.persist(ctx)
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or below is redirected to
// full removal; a zero quantity never reaches the remote update call.
func (s *Store) UpdateQuantity(ctx context.Context, variantID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, variantID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	line := s.findLine(variantID)
	if line == nil || line.RemoteLineID == "" || s.state.RemoteCartID == "" {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err := s.api.UpdateLine(ctx, s.state.RemoteCartID, line.RemoteLineID, quantity); err != nil {
		return s.healOrFail(ctx, err)
	}
	line.Quantity = quantity
	s.persist(ctx)
	return nil
}

// RemoveItem drops a line from both sides. Removing the last line clears
// the whole cart, since an empty remote cart is equivalent to no cart.
func (s *Store) RemoveItem(ctx context.Context, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	line := s.findLine(variantID)
	if line == nil || line.RemoteLineID == "" || s.state.RemoteCartID == "" {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err := s.api.RemoveLine(ctx, s.state.RemoteCartID, line.RemoteLineID); err != nil {
		return s.healOrFail(ctx, err)
	}

	kept := s.state.Lines[:0]
	for _, l := range s.state.Lines {
		if l.VariantID != variantID {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		s.clearLocked(ctx)
		return nil
	}
	s.state.Lines = kept
	s.persist(ctx)
	return nil
}

// Sync reconciles against the remote cart: if it is gone or empty, the
// local mirror is cleared. Safe to call opportunistically; it performs no
// network call when there is no remote cart and is a no-op while another
// Sync is in flight.
func (s *Store) Sync(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer s.syncing.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.RemoteCartID == "" {
		return nil
	}
	quantity, err := s.api.CartTotalQuantity(ctx, s.state.RemoteCartID)
	if err != nil {
		if domain.IsCartGone(err) || errors.Is(err, domain.ErrNotFound) {
			s.clearLocked(ctx)
			return nil
		}
		return err
	}
	if quantity == 0 {
		s.clearLocked(ctx)
	}
	return nil
}

// Clear discards the whole local cart state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

// State returns a copy of the current snapshot, consistent because the
// transaction lock is held for the read.
func (s *Store) State() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Lines = append([]domain.CartLine(nil), s.state.Lines...)
	return out
}

// Busy reports whether a mutation is in flight.
func (s *Store) Busy() bool { return s.busy.Load() }

// Syncing reports whether a reconciliation is in flight.
func (s *Store) Syncing() bool { return s.syncing.Load() }

// CheckoutURL returns the channel-tagged hosted checkout URL, empty when
// no remote cart exists. The store only hands the URL off; navigation is
// the caller's business.
func (s *Store) CheckoutURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CheckoutURL
}

// Totals is the derived pricing view the UI renders: subtotal, unlocked
// rewards and the resulting payable amount. Recomputed on every call,
// never stored.
type Totals struct {
	SubtotalCents   int64          `json:"subtotalCents"`
	Rewards         rewards.Result `json:"rewards"`
	TotalCents      int64          `json:"totalCents"`
	ProgressMessage string         `json:"progressMessage"`
	ProgressPercent int            `json:"progressPercent"`
}

// Totals derives the pricing view from the current subtotal.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	subtotal := s.state.Subtotal()
	s.mu.Unlock()

	r := rewards.Calculate(subtotal)
	return Totals{
		SubtotalCents:   subtotal,
		Rewards:         r,
		TotalCents:      subtotal - r.DiscountCents + r.ShippingCents,
		ProgressMessage: rewards.ProgressMessage(subtotal),
		ProgressPercent: rewards.ProgressPercent(subtotal),
	}
}

// healOrFail resets the local mirror when err carries the dead-cart
// sentinel; any other error leaves state untouched and is surfaced
// unchanged. No operation is retried automatically.
func (s *Store) healOrFail(ctx context.Context, err error) error {
	if domain.IsCartGone(err) {
		s.clearLocked(ctx)
		return domain.ErrCartExpired
	}
	return err
}

// clearLocked wipes lines, remote cart id and checkout URL together.
// Caller holds mu. A partial cart must never be left standing.
func (s *Store) clearLocked(ctx context.Context) {
	s.state = domain.CartSnapshot{}
	if err := s.snapshots.Delete(ctx, s.sessionID); err != nil {
		s.logger.Printf("delete snapshot for session %s: %v", s.sessionID, err)
	}
}

// persist saves the snapshot after a successful state change. A storage
// failure is logged, not surfaced: the remote mutation already succeeded
// and the in-memory state is authoritative for this process.
func (s *Store) persist(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.sessionID, s.state); err != nil {
		s.logger.Printf("save snapshot for session %s: %v", s.sessionID, err)
	}
}

func (s *Store) findLine(variantID string) *domain.CartLine {
	for i := range s.state.Lines {
		if s.state.Lines[i].VariantID == variantID {
			return &s.state.Lines[i]
		}
	}
	return nil
}

func lineFromInput(in AddInput, remoteLineID string) domain.CartLine {
	return domain.CartLine{
		RemoteLineID:    remoteLineID,
		VariantID:       in.VariantID,
		VariantTitle:    in.VariantTitle,
		ProductTitle:    in.ProductTitle,
		ProductHandle:   in.ProductHandle,
		ImageURL:        in.ImageURL,
		UnitPriceCents:  in.UnitPriceCents,
		Currency:        in.Currency,
		Quantity:        in.Quantity,
		SelectedOptions: in.SelectedOptions,
	}
}

// tagCheckoutURL stamps the traffic-source parameter onto the hosted
// checkout URL, overwriting any existing value. An unparseable URL is
// passed through untouched.
func tagCheckoutURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("channel", checkoutChannel)
	u.RawQuery = q.Encode()
	return u.String()
}
