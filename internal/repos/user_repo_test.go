package repos_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ponsiv/internal/domain"
	"ponsiv/internal/repos"
	"ponsiv/internal/store"
)

func signup(email, password string) domain.CreateUserRequest {
	return domain.CreateUserRequest{Email: email, Password: password, Name: "Tester", Handle: "tester"}
}

func TestCreateAndAuthenticate(t *testing.T) {
	r, _ := newRepos(t)
	ctx := context.Background()

	u, err := r.Users.Create(ctx, signup("a@example.com", "secret123"))
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"), "bcrypt hash expected")
	assert.NotContains(t, u.PasswordHash, "secret123")

	current, err := r.Users.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current, "sign-up opens a session")
	assert.Equal(t, u.ID, current.ID)

	require.NoError(t, r.Users.Logout(ctx))

	got, err := r.Users.Authenticate(ctx, "A@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	sid, err := r.Sessions.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sid)
	assert.Equal(t, u.ID, *sid)

	t.Run("wrong password", func(t *testing.T) {
		_, err := r.Users.Authenticate(ctx, "a@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := r.Users.Authenticate(ctx, "b@example.com", "secret123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	r, _ := newRepos(t)
	ctx := context.Background()

	_, err := r.Users.Create(ctx, signup("a@example.com", "secret123"))
	require.NoError(t, err)

	_, err = r.Users.Create(ctx, signup("  A@EXAMPLE.com", "other123"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)

	all, err := r.Users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLogoutKeepsUserData(t *testing.T) {
	r, _ := newRepos(t)
	ctx := context.Background()
	u, err := r.Users.Create(ctx, signup("a@example.com", "secret123"))
	require.NoError(t, err)
	_, err = r.Engagement.ToggleLike(ctx, "p1", u.ID)
	require.NoError(t, err)

	require.NoError(t, r.Users.Logout(ctx))

	current, err := r.Users.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
	liked, err := r.Engagement.LikedIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, liked)
}

func TestUpdateCurrentUser(t *testing.T) {
	r, _ := newRepos(t)
	ctx := context.Background()

	_, err := r.Users.UpdateCurrentUser(ctx, func(u *domain.User) {})
	assert.ErrorIs(t, err, domain.ErrMissingUser)

	other, err := r.Users.Create(ctx, signup("other@example.com", "secret123"))
	require.NoError(t, err)
	u, err := r.Users.Create(ctx, signup("me@example.com", "secret123"))
	require.NoError(t, err)

	avatar := "media/avatar.jpg"
	updated, err := r.Users.UpdateCurrentUser(ctx, func(cu *domain.User) {
		cu.AvatarPath = &avatar
		cu.ID = uuid.New()
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID, "id is immutable")
	require.NotNil(t, updated.AvatarPath)
	assert.Equal(t, avatar, *updated.AvatarPath)

	current, err := r.Users.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current.AvatarPath)
	assert.Equal(t, avatar, *current.AvatarPath)

	_, err = r.Users.UpdateCurrentUser(ctx, func(cu *domain.User) { cu.Email = "OTHER@example.com" })
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
	assert.NotEqual(t, other.ID, u.ID)
}

func TestSetCurrentUserToUnknownIDYieldsNoUser(t *testing.T) {
	r, _ := newRepos(t)
	ctx := context.Background()
	ghost := uuid.New()

	require.NoError(t, r.Users.SetCurrentUser(ctx, &ghost))
	current, err := r.Users.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = r.Users.UpdateCurrentUser(ctx, func(u *domain.User) {})
	assert.ErrorIs(t, err, domain.ErrMissingUser)
}

func TestLegacyDigestIsUpgradedOnLogin(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	st := openStore(t, dir)
	sum := sha256.Sum256([]byte("secret123"))
	uid := uuid.New()
	require.NoError(t, st.Update(ctx, func(d *store.Document) error {
		d.Users = append(d.Users, store.UserRecord{
			ID: uid, Email: "old@example.com", Name: "Old", Handle: "old",
			PasswordHash: hex.EncodeToString(sum[:]), CreatedAt: domain.Now(),
		})
		return nil
	}))
	users := repos.NewUserRepo(st, repos.NewPasswordHasher(bcrypt.MinCost))

	_, err := users.Authenticate(ctx, "old@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	u, err := users.Authenticate(ctx, "old@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uid, u.ID)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))

	reopened := repos.NewUserRepo(openStore(t, dir), repos.NewPasswordHasher(bcrypt.MinCost))
	again, err := reopened.Authenticate(ctx, "old@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uid, again.ID)
}
