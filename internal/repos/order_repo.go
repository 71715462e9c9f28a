package repos

import (
	"context"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct{ st *store.Store }

func NewOrderRepo(st *store.Store) *OrderRepo { return &OrderRepo{st: st} }

// Load returns the user's orders in stored order.
func (r *OrderRepo) Load(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var out []domain.Order
	err := r.st.View(ctx, func(d *store.Document) error {
		recs := d.Orders[userID]
		out = make([]domain.Order, 0, len(recs))
		for _, rec := range recs {
			out = append(out, toOrder(rec))
		}
		return nil
	})
	return out, err
}

// Save replaces the user's order list with orders.
func (r *OrderRepo) Save(ctx context.Context, orders []domain.Order, userID uuid.UUID) error {
	recs := make([]store.OrderRecord, 0, len(orders))
	for _, o := range orders {
		recs = append(recs, fromOrder(o))
	}
	return r.st.Update(ctx, func(d *store.Document) error {
		d.Orders[userID] = recs
		return nil
	})
}

// Checkout appends the orders built from the user's cart and clears the cart.
func (r *OrderRepo) Checkout(ctx context.Context, userID uuid.UUID, build func(domain.CartState) ([]domain.Order, error)) ([]domain.Order, error) {
	var placed []domain.Order
	err := r.st.Update(ctx, func(d *store.Document) error {
		orders, err := build(domain.NewCartState(d.Carts[userID]))
		if err != nil {
			return err
		}
		recs := append([]store.OrderRecord{}, d.Orders[userID]...)
		for _, o := range orders {
			recs = append(recs, fromOrder(o))
		}
		d.Orders[userID] = recs
		d.Carts[userID] = map[string]int{}
		placed = orders
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func toOrder(r store.OrderRecord) domain.Order {
	return domain.Order{
		ID:        r.ID,
		ProductID: r.ProductID,
		Brand:     r.Brand,
		Title:     r.Title,
		Size:      r.Size,
		Status:    domain.OrderStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func fromOrder(o domain.Order) store.OrderRecord {
	return store.OrderRecord{
		ID:        o.ID,
		ProductID: o.ProductID,
		Brand:     o.Brand,
		Title:     o.Title,
		Size:      o.Size,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}
