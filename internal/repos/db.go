package repos

import (
	"context"
	"fmt"

	"ponsiv/internal/store"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// OpenStore opens the document store on the configured backend: a state file
// under stateDir, or a kv row in the sqlite database at dsn.
func OpenStore(ctx context.Context, backend, stateDir, dsn string) (*store.Store, error) {
	var b store.Backend
	switch backend {
	case "", BackendFile:
		fb, err := store.NewFileBackend(stateDir)
		if err != nil {
			return nil, err
		}
		b = fb
	case BackendSQLite:
		sb, err := store.OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		b = sb
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	st, err := store.Open(ctx, b)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return st, nil
}

// Repos bundles one implementation of every repository over a single store.
type Repos struct {
	Products   *ProductRepo
	Users      *UserRepo
	Sessions   *SessionRepo
	Carts      *CartRepo
	Engagement *EngagementRepo
	Looks      *LookRepo
	Orders     *OrderRepo
}

func New(st *store.Store, products *ProductRepo, hasher PasswordHasher) *Repos {
	return &Repos{
		Products:   products,
		Users:      NewUserRepo(st, hasher),
		Sessions:   NewSessionRepo(st),
		Carts:      NewCartRepo(st),
		Engagement: NewEngagementRepo(st),
		Looks:      NewLookRepo(st),
		Orders:     NewOrderRepo(st),
	}
}
