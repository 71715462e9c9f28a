package services

import (
	"context"
	"strings"

	"ponsiv/internal/domain"
)

type EngagementService struct {
	Engagement domain.EngagementRepository
	Products   domain.ProductRepository
	Users      domain.UserRepository
}

func NewEngagementService(eng domain.EngagementRepository, products domain.ProductRepository, users domain.UserRepository) *EngagementService {
	return &EngagementService{Engagement: eng, Products: products, Users: users}
}

// ToggleLike flips the like on a product or look id and reports the new state.
func (s *EngagementService) ToggleLike(ctx context.Context, id string) (bool, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return false, err
	}
	if !strings.HasPrefix(id, domain.LookIDPrefix) {
		if _, err := s.Products.Product(ctx, id); err != nil {
			return false, err
		}
	}
	return s.Engagement.ToggleLike(ctx, id, uid)
}

func (s *EngagementService) ToggleWardrobe(ctx context.Context, productID string) (bool, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return false, err
	}
	if _, err := s.Products.Product(ctx, productID); err != nil {
		return false, err
	}
	return s.Engagement.ToggleWardrobe(ctx, productID, uid)
}

// Liked returns the liked ids, sorted.
func (s *EngagementService) Liked(ctx context.Context) ([]string, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	return s.Engagement.LikedIDs(ctx, uid)
}

// Wardrobe resolves the saved products against the catalog in catalog order.
func (s *EngagementService) Wardrobe(ctx context.Context) ([]domain.Product, error) {
	uid, err := sessionUserID(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	ids, err := s.Engagement.WardrobeIDs(ctx, uid)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	ps, err := s.Products.Products(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range ps {
		if set[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}
