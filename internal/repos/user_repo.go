package repos

import (
	"context"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
	"ponsiv/internal/store"
)

var _ domain.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	st     *store.Store
	hasher PasswordHasher
}

func NewUserRepo(st *store.Store, hasher PasswordHasher) *UserRepo {
	return &UserRepo{st: st, hasher: hasher}
}

// Create registers the user and makes it the current session.
func (r *UserRepo) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	// Hash outside the store lock.
	hash, err := r.hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Handle:       req.Handle,
		AvatarPath:   req.AvatarPath,
		Age:          req.Age,
		City:         req.City,
		Sex:          req.Sex,
		CreatedAt:    domain.Now(),
	}
	err = r.st.Update(ctx, func(d *store.Document) error {
		if d.UserByEmail(email) >= 0 {
			return domain.ErrEmailAlreadyUsed
		}
		d.Users = append(d.Users, fromUser(u))
		id := u.ID
		d.SessionUserID = &id
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate checks credentials and binds the session on success.
func (r *UserRepo) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	var rec store.UserRecord
	err := r.st.View(ctx, func(d *store.Document) error {
		i := d.UserByEmail(email)
		if i < 0 {
			return domain.ErrInvalidCredentials
		}
		rec = d.Users[i]
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	ok, legacy := r.hasher.Verify(rec.PasswordHash, password)
	if !ok {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	upgraded := ""
	if legacy {
		if h, err := r.hasher.Hash(password); err == nil {
			upgraded = h
		}
	}

	err = r.st.Update(ctx, func(d *store.Document) error {
		i := d.UserIndex(rec.ID)
		if i < 0 {
			return domain.ErrInvalidCredentials
		}
		if upgraded != "" && d.Users[i].PasswordHash == rec.PasswordHash {
			d.Users[i].PasswordHash = upgraded
		}
		rec = d.Users[i]
		id := rec.ID
		d.SessionUserID = &id
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return toUser(rec), nil
}

// CurrentUser resolves the session pointer; nil when nobody is logged in.
func (r *UserRepo) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out *domain.User
	err := r.st.View(ctx, func(d *store.Document) error {
		if d.SessionUserID == nil {
			return nil
		}
		if i := d.UserIndex(*d.SessionUserID); i >= 0 {
			u := toUser(d.Users[i])
			out = &u
		}
		return nil
	})
	return out, err
}

// UpdateCurrentUser applies mutate to a copy of the session user and stores it.
// The id cannot change; a changed email is normalised and must stay unique.
func (r *UserRepo) UpdateCurrentUser(ctx context.Context, mutate func(*domain.User)) (domain.User, error) {
	var out domain.User
	err := r.st.Update(ctx, func(d *store.Document) error {
		if d.SessionUserID == nil {
			return domain.ErrMissingUser
		}
		i := d.UserIndex(*d.SessionUserID)
		if i < 0 {
			return domain.ErrMissingUser
		}
		u := toUser(d.Users[i])
		mutate(&u)
		u.ID = d.Users[i].ID
		u.Email = domain.NormalizeEmail(u.Email)
		if u.Email != d.Users[i].Email {
			if j := d.UserByEmail(u.Email); j >= 0 && j != i {
				return domain.ErrEmailAlreadyUsed
			}
		}
		d.Users[i] = fromUser(u)
		out = u
		return nil
	})
	return out, err
}

func (r *UserRepo) Logout(ctx context.Context) error {
	return r.SetCurrentUser(ctx, nil)
}

func (r *UserRepo) SetCurrentUser(ctx context.Context, id *uuid.UUID) error {
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

// All returns every account in registration order.
func (r *UserRepo) All(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.st.View(ctx, func(d *store.Document) error {
		out = make([]domain.User, 0, len(d.Users))
		for _, rec := range d.Users {
			out = append(out, toUser(rec))
		}
		return nil
	})
	return out, err
}

func toUser(r store.UserRecord) domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Handle:       r.Handle,
		AvatarPath:   r.AvatarPath,
		Age:          r.Age,
		City:         r.City,
		Sex:          r.Sex,
		CreatedAt:    r.CreatedAt,
	}
}

func fromUser(u domain.User) store.UserRecord {
	return store.UserRecord{
		ID:           u.ID,
		Email:        domain.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Handle:       u.Handle,
		AvatarPath:   u.AvatarPath,
		Age:          u.Age,
		City:         u.City,
		Sex:          u.Sex,
		CreatedAt:    u.CreatedAt,
	}
}
