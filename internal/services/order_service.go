package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
)

// DefaultSize is used when a product declares no sizes.
const DefaultSize = "M"

type OrderService struct {
	Orders   domain.OrderRepository
	Products domain.ProductRepository
	Users    domain.UserRepository
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, users domain.UserRepository) *OrderService {
	return &OrderService{Orders: orders, Products: products, Users: users}
}

// Place turns every cart unit into one shipped order, appends them to the
// user's history and empties the cart. Lines for products no longer in the
// catalog are dropped.
func (s *OrderService) Place(ctx context.Context) ([]domain.Order, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	ps, err := s.Products.Products(ctx)
	if err != nil {
		return nil, err
	}
	idx := domain.ProductIndex(ps)
	now := domain.Now()

	return s.Orders.Checkout(ctx, uid, func(cart domain.CartState) ([]domain.Order, error) {
		if cart.IsEmpty() {
			return nil, ErrCartEmpty
		}
		ids := make([]string, 0, len(cart.Quantities))
		for id := range cart.Quantities {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var placed []domain.Order
		for _, id := range ids {
			p, ok := idx[id]
			if !ok {
				applog.L().Warn().Str("product", id).Msg("order.skip.unknown_product")
				continue
			}
			size := DefaultSize
			if len(p.Sizes) > 0 {
				size = p.Sizes[0]
			}
			for n := 0; n < cart.Quantity(id); n++ {
				placed = append(placed, domain.Order{
					ID:        uuid.New(),
					ProductID: p.ID,
					Brand:     p.Brand,
					Title:     p.Title,
					Size:      size,
					Status:    domain.OrderShipped,
					CreatedAt: now,
				})
			}
		}
		return placed, nil
	})
}

// History returns the session user's orders, newest first.
func (s *OrderService) History(ctx context.Context) ([]domain.Order, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.Load(ctx, uid)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}
