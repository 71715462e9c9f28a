package repos

import (
	"context"
	"sort"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.LookRepository = (*LookRepo)(nil)

// LookRepo stores the global look collection.
type LookRepo struct{ st *store.Store }

func NewLookRepo(st *store.Store) *LookRepo { return &LookRepo{st: st} }

// Load returns all looks, newest first.
func (r *LookRepo) Load(ctx context.Context) ([]domain.Look, error) {
	var out []domain.Look
	err := r.st.View(ctx, func(d *store.Document) error {
		out = make([]domain.Look, 0, len(d.Looks))
		for _, rec := range d.Looks {
			out = append(out, toLook(rec))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// Save appends look; its id is chosen by the caller.
func (r *LookRepo) Save(ctx context.Context, look domain.Look) error {
	rec := fromLook(look)
	return r.st.Update(ctx, func(d *store.Document) error {
		d.Looks = append(d.Looks, rec)
		return nil
	})
}

func (r *LookRepo) Update(ctx context.Context, look domain.Look) error {
	rec := fromLook(look)
	return r.st.Update(ctx, func(d *store.Document) error {
		i := d.LookIndex(look.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		d.Looks[i] = rec
		return nil
	})
}

// Delete removes the look; an unknown id is not an error.
func (r *LookRepo) Delete(ctx context.Context, id string) error {
	return r.st.Update(ctx, func(d *store.Document) error {
		kept := d.Looks[:0]
		for _, l := range d.Looks {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		d.Looks = kept
		return nil
	})
}

func toLook(r store.LookRecord) domain.Look {
	return domain.Look{
		ID:          r.ID,
		Title:       r.Title,
		Author:      domain.LookAuthor{Name: r.Author.Name, AvatarPath: r.Author.AvatarPath},
		ProductIDs:  append([]string{}, r.ProductIDs...),
		CoverPath:   r.CoverPath,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func fromLook(l domain.Look) store.LookRecord {
	return store.LookRecord{
		ID:          l.ID,
		Title:       l.Title,
		Author:      store.LookAuthorRecord{Name: l.Author.Name, AvatarPath: l.Author.AvatarPath},
		ProductIDs:  append([]string{}, l.ProductIDs...),
		CoverPath:   l.CoverPath,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}
