package services

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ponsiv/internal/domain"
)

type CartService struct {
	Carts    domain.CartRepository
	Products domain.ProductRepository
	Users    domain.UserRepository
}

func NewCartService(carts domain.CartRepository, products domain.ProductRepository, users domain.UserRepository) *CartService {
	return &CartService{Carts: carts, Products: products, Users: users}
}

type CartLine struct {
	Product  domain.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines []CartLine      `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Add puts qty units of a catalog product in the session user's cart.
func (s *CartService) Add(ctx context.Context, productID string, qty int) (domain.CartState, error) {
	if qty < 1 {
		qty = 1
	}
	if _, err := sessionUserID(ctx, s.Users); err != nil {
		return domain.CartState{}, err
	}
	if _, err := s.Products.Product(ctx, productID); err != nil {
		return domain.CartState{}, err
	}
	return s.change(ctx, func(c *domain.CartState) { c.Update(productID, qty) })
}

// Remove takes qty units off a line; the line disappears at zero.
func (s *CartService) Remove(ctx context.Context, productID string, qty int) (domain.CartState, error) {
	if qty < 1 {
		qty = 1
	}
	return s.change(ctx, func(c *domain.CartState) { c.Update(productID, -qty) })
}

func (s *CartService) RemoveLine(ctx context.Context, productID string) (domain.CartState, error) {
	return s.change(ctx, func(c *domain.CartState) { c.Remove(productID) })
}

func (s *CartService) Clear(ctx context.Context) error {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return err
	}
	return s.Carts.Clear(ctx, uid)
}

// View joins the cart to the catalog, sorted by title. Unknown products are left out.
func (s *CartService) View(ctx context.Context) (CartView, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return CartView{}, err
	}
	cart, err := s.Carts.Load(ctx, uid)
	if err != nil {
		return CartView{}, err
	}
	ps, err := s.Products.Products(ctx)
	if err != nil {
		return CartView{}, err
	}
	idx := domain.ProductIndex(ps)
	view := CartView{Lines: []CartLine{}, Total: cart.Total(ps)}
	for id, qty := range cart.Quantities {
		p, ok := idx[id]
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, CartLine{
			Product:  p,
			Quantity: qty,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
		view.Count += qty
	}
	sort.Slice(view.Lines, func(i, j int) bool {
		a, b := strings.ToLower(view.Lines[i].Product.Title), strings.ToLower(view.Lines[j].Product.Title)
		if a != b {
			return a < b
		}
		return view.Lines[i].Product.ID < view.Lines[j].Product.ID
	})
	return view, nil
}

// change applies fn to the session user's cart in a single store write.
func (s *CartService) change(ctx context.Context, fn func(*domain.CartState)) (domain.CartState, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return domain.CartState{}, err
	}
	return s.Carts.Modify(ctx, uid, fn)
}
