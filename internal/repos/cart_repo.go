package repos

import (
	"context"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.CartRepository = (*CartRepo)(nil)

type CartRepo struct{ st *store.Store }

func NewCartRepo(st *store.Store) *CartRepo { return &CartRepo{st: st} }

// Load returns the stored cart, or an empty one.
func (r *CartRepo) Load(ctx context.Context, userID uuid.UUID) (domain.CartState, error) {
	var out domain.CartState
	err := r.st.View(ctx, func(d *store.Document) error {
		out = domain.NewCartState(d.Carts[userID])
		return nil
	})
	return out, err
}

// Save replaces the stored lines for userID with cart.
func (r *CartRepo) Save(ctx context.Context, cart domain.CartState, userID uuid.UUID) error {
	lines := domain.NewCartState(cart.Quantities).Quantities
	return r.st.Update(ctx, func(d *store.Document) error {
		d.Carts[userID] = lines
		return nil
	})
}

// Modify runs fn on the stored cart under the store lock and saves the result.
func (r *CartRepo) Modify(ctx context.Context, userID uuid.UUID, fn func(*domain.CartState)) (domain.CartState, error) {
	var out domain.CartState
	err := r.st.Update(ctx, func(d *store.Document) error {
		cart := domain.NewCartState(d.Carts[userID])
		fn(&cart)
		d.Carts[userID] = domain.NewCartState(cart.Quantities).Quantities
		out = domain.NewCartState(cart.Quantities)
		return nil
	})
	if err != nil {
		return domain.CartState{}, err
	}
	return out, nil
}

func (r *CartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.st.Update(ctx, func(d *store.Document) error {
		d.Carts[userID] = map[string]int{}
		return nil
	})
}
