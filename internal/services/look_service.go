package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
	"ponsiv/internal/validate"
)

type LookService struct {
	Looks  domain.LookRepository
	Users  domain.UserRepository
	Photos Photos
}

func NewLookService(looks domain.LookRepository, users domain.UserRepository, photos Photos) *LookService {
	return &LookService{Looks: looks, Users: users, Photos: photos}
}

// LookInput carries the editable fields of a look.
type LookInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	ProductIDs  []string `json:"productIDs"`
}

func (in LookInput) clean() (LookInput, error) {
	title, ok := validate.NonEmpty(in.Title)
	if !ok {
		return in, invalid("title", "required")
	}
	in.Title = title
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
	ids := make([]string, 0, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		if id, ok := validate.ID(id); ok {
			ids = append(ids, id)
		}
	}
	in.ProductIDs = ids
	return in, nil
}

// Create stores the cover photo (named after the look id) and publishes the
// look under the session user's name.
func (s *LookService) Create(ctx context.Context, in LookInput, cover io.Reader) (domain.Look, error) {
	u, err := sessionUser(ctx, s.Users)
	if err != nil {
		return domain.Look{}, err
	}
	in, err = in.clean()
	if err != nil {
		return domain.Look{}, err
	}
	if cover == nil {
		return domain.Look{}, invalid("cover", "required")
	}
	id := domain.NewLookID()
	path, err := s.Photos.Save(ctx, id, cover)
	if err != nil {
		return domain.Look{}, err
	}
	look := domain.Look{
		ID:          id,
		Title:       in.Title,
		Author:      domain.LookAuthor{Name: u.Name, AvatarPath: u.AvatarPath},
		ProductIDs:  in.ProductIDs,
		CoverPath:   path,
		Description: in.Description,
		CreatedAt:   domain.Now(),
	}
	if err := s.Looks.Save(ctx, look); err != nil {
		_ = s.Photos.Delete(path)
		return domain.Look{}, err
	}
	return look, nil
}

// Update replaces the editable fields; a non-nil cover replaces the photo too.
func (s *LookService) Update(ctx context.Context, id string, in LookInput, cover io.Reader) (domain.Look, error) {
	if _, err := sessionUser(ctx, s.Users); err != nil {
		return domain.Look{}, err
	}
	in, err := in.clean()
	if err != nil {
		return domain.Look{}, err
	}
	look, err := s.find(ctx, id)
	if err != nil {
		return domain.Look{}, err
	}
	look.Title, look.Description, look.ProductIDs = in.Title, in.Description, in.ProductIDs
	if cover != nil {
		path, err := s.Photos.Save(ctx, look.ID, cover)
		if err != nil {
			return domain.Look{}, err
		}
		if path != look.CoverPath {
			if err := s.Photos.Delete(look.CoverPath); err != nil {
				applog.L().Warn().Err(err).Str("look", id).Msg("look.cover.delete.fail")
			}
		}
		look.CoverPath = path
	}
	if err := s.Looks.Update(ctx, look); err != nil {
		return domain.Look{}, err
	}
	return look, nil
}

// Delete removes the look and its cover. Unknown ids are a no-op.
func (s *LookService) Delete(ctx context.Context, id string) error {
	if _, err := sessionUser(ctx, s.Users); err != nil {
		return err
	}
	look, err := s.find(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.Looks.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Photos.Delete(look.CoverPath); err != nil {
		applog.L().Warn().Err(err).Str("look", id).Msg("look.cover.delete.fail")
	}
	return nil
}

// List returns every look, newest first.
func (s *LookService) List(ctx context.Context) ([]domain.Look, error) {
	return s.Looks.Load(ctx)
}

func (s *LookService) find(ctx context.Context, id string) (domain.Look, error) {
	looks, err := s.Looks.Load(ctx)
	if err != nil {
		return domain.Look{}, err
	}
	for _, l := range looks {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Look{}, domain.ErrNotFound
}
