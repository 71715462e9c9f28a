package repos

import (
	"context"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.EngagementRepository = (*EngagementRepo)(nil)

// EngagementRepo keeps per-user like and wardrobe sets. Like ids may refer to
// products or looks.
type EngagementRepo struct{ st *store.Store }

func NewEngagementRepo(st *store.Store) *EngagementRepo { return &EngagementRepo{st: st} }

func likes(d *store.Document) map[uuid.UUID]store.IDSet    { return d.Likes }
func wardrobe(d *store.Document) map[uuid.UUID]store.IDSet { return d.Wardrobe }

func (r *EngagementRepo) IsLiked(ctx context.Context, id string, userID uuid.UUID) (bool, error) {
	return r.has(ctx, likes, id, userID)
}

func (r *EngagementRepo) ToggleLike(ctx context.Context, id string, userID uuid.UUID) (bool, error) {
	return r.toggle(ctx, likes, id, userID)
}

func (r *EngagementRepo) LikedIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return r.ids(ctx, likes, userID)
}

func (r *EngagementRepo) IsInWardrobe(ctx context.Context, productID string, userID uuid.UUID) (bool, error) {
	return r.has(ctx, wardrobe, productID, userID)
}

func (r *EngagementRepo) ToggleWardrobe(ctx context.Context, productID string, userID uuid.UUID) (bool, error) {
	return r.toggle(ctx, wardrobe, productID, userID)
}

func (r *EngagementRepo) WardrobeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return r.ids(ctx, wardrobe, userID)
}

// toggle flips membership and returns true when id is now present.
func (r *EngagementRepo) toggle(ctx context.Context, sets func(*store.Document) map[uuid.UUID]store.IDSet, id string, userID uuid.UUID) (bool, error) {
	var present bool
	err := r.st.Update(ctx, func(d *store.Document) error {
		m := sets(d)
		set := m[userID]
		if set == nil {
			set = store.IDSet{}
			m[userID] = set
		}
		if set.Has(id) {
			delete(set, id)
			present = false
		} else {
			set[id] = struct{}{}
			present = true
		}
		return nil
	})
	return present, err
}

func (r *EngagementRepo) has(ctx context.Context, sets func(*store.Document) map[uuid.UUID]store.IDSet, id string, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.st.View(ctx, func(d *store.Document) error {
		ok = sets(d)[userID].Has(id)
		return nil
	})
	return ok, err
}

func (r *EngagementRepo) ids(ctx context.Context, sets func(*store.Document) map[uuid.UUID]store.IDSet, userID uuid.UUID) ([]string, error) {
	var out []string
	err := r.st.View(ctx, func(d *store.Document) error {
		out = sets(d)[userID].Sorted()
		return nil
	})
	return out, err
}
