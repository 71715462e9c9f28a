package repos

import (
	"context"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.SessionRepository = (*SessionRepo)(nil)

// SessionRepo exposes the raw session pointer of the document.
type SessionRepo struct{ st *store.Store }

func NewSessionRepo(st *store.Store) *SessionRepo { return &SessionRepo{st: st} }

func (r *SessionRepo) Load(ctx context.Context) (*uuid.UUID, error) {
	var out *uuid.UUID
	err := r.st.View(ctx, func(d *store.Document) error {
		if d.SessionUserID != nil {
			v := *d.SessionUserID
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *SessionRepo) Persist(ctx context.Context, id *uuid.UUID) error {
	return r.st.Update(ctx, func(d *store.Document) error {
		if id == nil {
			d.SessionUserID = nil
			return nil
		}
		v := *id
		d.SessionUserID = &v
		return nil
	})
}
