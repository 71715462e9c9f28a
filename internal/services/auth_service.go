package services

import (
	"context"
	"io"

	"ponsiv/internal/domain"
	"ponsiv/internal/validate"
)

type AuthService struct {
	Users  domain.UserRepository
	Photos Photos
}

func NewAuthService(users domain.UserRepository, photos Photos) *AuthService {
	return &AuthService{Users: users, Photos: photos}
}

// SignUp validates the form, creates the account and logs it in.
func (s *AuthService) SignUp(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email, ok := validate.Email(req.Email)
	if !ok {
		return domain.User{}, invalid("email", "not a valid address")
	}
	if len(req.Password) > validate.MaxPassword {
		return domain.User{}, invalid("password", "must be at most 72 bytes")
	}
	if !validate.Password(req.Password) {
		return domain.User{}, invalid("password", "needs at least 6 characters")
	}
	name, ok := validate.NonEmpty(req.Name)
	if !ok {
		return domain.User{}, invalid("name", "required")
	}
	handle, ok := validate.NonEmpty(req.Handle)
	if !ok {
		return domain.User{}, invalid("handle", "required")
	}
	req.Email, req.Name, req.Handle = email, name, handle
	return s.Users.Create(ctx, req)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	return s.Users.Authenticate(ctx, email, password)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.Users.Logout(ctx)
}

// Current returns the session user, nil when logged out.
func (s *AuthService) Current(ctx context.Context) (*domain.User, error) {
	return s.Users.CurrentUser(ctx)
}

// Accounts lists every registered user.
func (s *AuthService) Accounts(ctx context.Context) ([]domain.User, error) {
	return s.Users.All(ctx)
}

// UpdateAvatar stores the image and points the session user's avatar at it.
func (s *AuthService) UpdateAvatar(ctx context.Context, image io.Reader) (domain.User, error) {
	u, err := sessionUser(ctx, s.Users)
	if err != nil {
		return domain.User{}, err
	}
	path, err := s.Photos.Save(ctx, "avatar_"+u.ID.String(), image)
	if err != nil {
		return domain.User{}, err
	}
	return s.Users.UpdateCurrentUser(ctx, func(cu *domain.User) {
		cu.AvatarPath = &path
	})
}
