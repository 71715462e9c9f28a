package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Products(ctx context.Context) ([]Product, error)
	Product(ctx context.Context, id string) (Product, error)
	LikeCounts(ctx context.Context) (map[string]int, error)
}

type EngagementRepository interface {
	IsLiked(ctx context.Context, id string, userID uuid.UUID) (bool, error)
	ToggleLike(ctx context.Context, id string, userID uuid.UUID) (bool, error)
	LikedIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	IsInWardrobe(ctx context.Context, productID string, userID uuid.UUID) (bool, error)
	ToggleWardrobe(ctx context.Context, productID string, userID uuid.UUID) (bool, error)
	WardrobeIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	CurrentUser(ctx context.Context) (*User, error)
	UpdateCurrentUser(ctx context.Context, mutate func(*User)) (User, error)
	Logout(ctx context.Context) error
	SetCurrentUser(ctx context.Context, id *uuid.UUID) error
	All(ctx context.Context) ([]User, error)
}

type SessionRepository interface {
	Load(ctx context.Context) (*uuid.UUID, error)
	Persist(ctx context.Context, id *uuid.UUID) error
}

type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (CartState, error)
	Save(ctx context.Context, cart CartState, userID uuid.UUID) error
	// Modify applies fn to the stored cart and saves it in one store write.
	Modify(ctx context.Context, userID uuid.UUID, fn func(*CartState)) (CartState, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type LookRepository interface {
	Load(ctx context.Context) ([]Look, error)
	Save(ctx context.Context, look Look) error
	Update(ctx context.Context, look Look) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Load(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Save(ctx context.Context, orders []Order, userID uuid.UUID) error
	// Checkout turns the stored cart into orders with build, appends them to
	// the history and empties the cart, all in one store write. An error from
	// build leaves both untouched.
	Checkout(ctx context.Context, userID uuid.UUID, build func(CartState) ([]Order, error)) ([]Order, error)
}
