package repos

import (
	"context"

	"ponsiv/internal/catalog"
	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.ProductRepository = (*ProductRepo)(nil)

// ProductRepo serves the read-only catalog and derives like counts from the store.
type ProductRepo struct {
	st      *store.Store
	catalog *catalog.Loader
}

func NewProductRepo(st *store.Store, loader *catalog.Loader) *ProductRepo {
	return &ProductRepo{st: st, catalog: loader}
}

func (r *ProductRepo) Products(ctx context.Context) ([]domain.Product, error) {
	return r.catalog.Products(ctx)
}

func (r *ProductRepo) Product(ctx context.Context, id string) (domain.Product, error) {
	ps, err := r.catalog.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range ps {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// LikeCounts tallies every user's like set. There is no incremental counter.
func (r *ProductRepo) LikeCounts(ctx context.Context) (map[string]int, error) {
	tally := map[string]int{}
	err := r.st.View(ctx, func(d *store.Document) error {
		for _, set := range d.Likes {
			for id := range set {
				tally[id]++
			}
		}
		return nil
	})
	return tally, err
}
