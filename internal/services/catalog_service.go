package services

import (
	"context"
	"strings"

	"ponsiv/internal/domain"
)

// ProductView is a catalog product with its like tally.
type ProductView struct {
	domain.Product
	Likes int `json:"likes"`
}

// Filter narrows the product feed. Empty fields match everything.
type Filter struct {
	Q        string
	Brand    string
	Category string
}

func (f Filter) match(p domain.Product) bool {
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && (p.Category == nil || !strings.EqualFold(*p.Category, f.Category)) {
		return false
	}
	if f.Q != "" {
		q := strings.ToLower(f.Q)
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			return false
		}
	}
	return true
}

type CatalogService struct {
	Products domain.ProductRepository
}

func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{Products: products}
}

// List returns the feed in catalog order.
func (s *CatalogService) List(ctx context.Context, f Filter) ([]ProductView, error) {
	ps, err := s.Products.Products(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.Products.LikeCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		if f.match(p) {
			out = append(out, ProductView{Product: p, Likes: counts[p.ID]})
		}
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (ProductView, error) {
	p, err := s.Products.Product(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	counts, err := s.Products.LikeCounts(ctx)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{Product: p, Likes: counts[id]}, nil
}
