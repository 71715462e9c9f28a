package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
)

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PONSIV_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("PONSIV_CATALOG_DIR", filepath.Join(dir, "catalog"))
	t.Setenv("PONSIV_LOG_FILE", filepath.Join(dir, "ponsiv.log"))
	t.Setenv("PONSIV_BCRYPT_COST", "4")
	t.Cleanup(func() { applog.SetOutput(os.Stdout) })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"ponsiv"}, args...))
	return out.String(), err
}

func TestSignupThenUsers(t *testing.T) {
	testEnv(t)

	out, err := run(t, "signup", "--email", "Ana@Example.com", "--password", "secret1", "--name", "Ana", "--handle", "@ana")
	require.NoError(t, err)
	assert.Contains(t, out, "created ana@example.com")

	out, err = run(t, "users")
	require.NoError(t, err)
	var users []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "@ana", users[0].Handle)

	_, err = run(t, "signup", "--email", "ana@example.com", "--password", "secret1", "--name", "Ana", "--handle", "@ana")
	assert.Error(t, err)
}

func TestCatalogCommand(t *testing.T) {
	dir := testEnv(t)

	_, err := run(t, "catalog")
	assert.ErrorIs(t, err, domain.ErrDecodingFailed, "missing productos/ directory")

	info := filepath.Join(dir, "catalog", "productos", "ponsiv", "GORRA", "info.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(info), 0o755))
	require.NoError(t, os.WriteFile(info, []byte(`{"nombre":"Gorra","precio":5}`), 0o644))

	out, err := run(t, "catalog")
	require.NoError(t, err)
	var ps []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "Gorra", ps[0].Title)
}
