package services_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ponsiv/internal/catalog"
	"ponsiv/internal/domain"
	"ponsiv/internal/repos"
	"ponsiv/internal/services"
)

type fakePhotos struct {
	mu      sync.Mutex
	saved   map[string]string
	deleted []string
}

func (f *fakePhotos) Save(_ context.Context, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	path := "media/" + name + ".jpg"
	f.saved[path] = string(b)
	return path, nil
}

func (f *fakePhotos) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

type env struct {
	repos    *repos.Repos
	photos   *fakePhotos
	auth     *services.AuthService
	catalog  *services.CatalogService
	cart     *services.CartService
	orders   *services.OrderService
	looks    *services.LookService
	engaging *services.EngagementService
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// catalogTree holds CAMISA (20.50, sizes S/L) and GORRA (5, no sizes).
func catalogTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "productos", "ponsiv", "CAMISA", "info.json"),
		`{"nombre":"Camisa","marca":"Ponsiv","precio":20.50,"tallas":["S","L"],"categoria":"camisas"}`)
	writeFile(t, filepath.Join(root, "productos", "ponsiv", "GORRA", "info.json"),
		`{"nombre":"Gorra","marca":"Ponsiv","precio":5}`)
	return root
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st, err := repos.OpenStore(context.Background(), repos.BackendFile, t.TempDir(), "")
	require.NoError(t, err)
	products := repos.NewProductRepo(st, catalog.NewLoader(catalogTree(t)))
	r := repos.New(st, products, repos.NewPasswordHasher(bcrypt.MinCost))
	photos := &fakePhotos{}
	return &env{
		repos:    r,
		photos:   photos,
		auth:     services.NewAuthService(r.Users, photos),
		catalog:  services.NewCatalogService(r.Products),
		cart:     services.NewCartService(r.Carts, r.Products, r.Users),
		orders:   services.NewOrderService(r.Orders, r.Products, r.Users),
		looks:    services.NewLookService(r.Looks, r.Users, photos),
		engaging: services.NewEngagementService(r.Engagement, r.Products, r.Users),
	}
}

func (e *env) signup(t *testing.T, email string) domain.User {
	t.Helper()
	u, err := e.auth.SignUp(context.Background(), domain.CreateUserRequest{
		Email: email, Password: "secret1", Name: "Ana", Handle: "@ana",
	})
	require.NoError(t, err)
	return u
}
