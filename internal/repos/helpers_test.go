package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ponsiv/internal/catalog"
	"ponsiv/internal/repos"
	"ponsiv/internal/store"
)

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	st, err := repos.OpenStore(context.Background(), repos.BackendFile, dir, "")
	require.NoError(t, err)
	return st
}

func newRepos(t *testing.T) (*repos.Repos, string) {
	t.Helper()
	dir := t.TempDir()
	st := openStore(t, dir)
	products := repos.NewProductRepo(st, catalog.NewLoader(t.TempDir()))
	return repos.New(st, products, repos.NewPasswordHasher(bcrypt.MinCost)), dir
}
