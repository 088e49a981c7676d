package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-api/internal/domain/user"
)

func newTestUser(email string) *user.User {
	return &user.User{
		ID:           uuid.New(),
		Name:         "Test " + email,
		Email:        email,
		Avatar:       "https://www.gravatar.com/avatar/x",
		PasswordHash: "$2a$10$notarealhash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// testRepositoryContract checks behavior every user.Repository must share.
// newRepo must return an empty repository.
func testRepositoryContract(t *testing.T, newRepo func(t *testing.T) user.Repository) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		repo := newRepo(t)
		u := newTestUser("find@x.com")
		require.NoError(t, repo.Create(ctx, u))

		byID, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, u.PasswordHash, byID.PasswordHash)

		byEmail, err := repo.FindByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("missing records", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		_, err = repo.FindByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newTestUser("dup@x.com")))
		err := repo.Create(ctx, newTestUser("dup@x.com"))
		assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 3; i++ {
			u := newTestUser(fmt.Sprintf("list%d@x.com", i))
			u.CreatedAt = u.CreatedAt.Add(time.Duration(i) * time.Second)
			require.NoError(t, repo.Create(ctx, u))
		}
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		for i, u := range users {
			assert.Equal(t, fmt.Sprintf("list%d@x.com", i), u.Email)
		}
	})

	t.Run("replace fields", func(t *testing.T) {
		repo := newRepo(t)
		u := newTestUser("before@x.com")
		require.NoError(t, repo.Create(ctx, u))

		got, err := repo.ReplaceFields(ctx, u.ID, "B", "after@x.com", "$2a$10$other")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "B", got.Name)
		assert.Equal(t, "after@x.com", got.Email)
		assert.Equal(t, "$2a$10$other", got.PasswordHash)
		assert.Equal(t, u.Avatar, got.Avatar)

		stored, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", stored.Name)
	})

	t.Run("replace fields on missing id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.ReplaceFields(ctx, uuid.New(), "B", "b@x.com", "hash")
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("replace fields with taken email", func(t *testing.T) {
		repo := newRepo(t)
		first := newTestUser("first@x.com")
		second := newTestUser("second@x.com")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		_, err := repo.ReplaceFields(ctx, second.ID, "S", "first@x.com", "hash")
		assert.ErrorIs(t, err, user.ErrDuplicateEmail)

		_, err = repo.ReplaceFields(ctx, second.ID, "S", "second@x.com", "hash")
		assert.NoError(t, err)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		u := newTestUser("gone@x.com")
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, repo.Delete(ctx, u.ID))
		_, err := repo.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		assert.NoError(t, repo.Delete(ctx, u.ID))
		assert.NoError(t, repo.Delete(ctx, uuid.New()))
	})
}
