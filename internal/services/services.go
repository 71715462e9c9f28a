package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"ponsiv/internal/domain"
)

var ErrCartEmpty = errors.New("cart is empty")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

func invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

// Photos is the subset of media.PhotoStore the services need.
type Photos interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(path string) error
}

// sessionUser resolves the logged-in user or fails with ErrMissingSession.
func sessionUser(ctx context.Context, users domain.UserRepository) (domain.User, error) {
	u, err := users.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if u == nil {
		return domain.User{}, domain.ErrMissingSession
	}
	return *u, nil
}

func sessionUserID(ctx context.Context, users domain.UserRepository) (uuid.UUID, error) {
	u, err := sessionUser(ctx, users)
	return u.ID, err
}
