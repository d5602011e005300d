package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapi/internal/domain"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := &domain.User{
		Email:          "alice@example.com",
		FullName:       "Alice",
		Bio:            "hello",
		HashedPassword: "secret-hash",
	}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Alice", byID.FullName)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoListExcept(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice", "bob", "carol")
	repo := NewUserRepo(db)

	users, err := repo.ListExcept(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "alice", u.ID)
	}
}

func TestUserRepoUpdate(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice")
	repo := NewUserRepo(db)
	ctx := context.Background()

	u, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)

	u.FullName = "Alice B."
	u.Bio = "updated"
	u.ProfilePicURL = "/uploads/pic.png"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.FullName)
	assert.Equal(t, "updated", got.Bio)
	assert.Equal(t, "/uploads/pic.png", got.ProfilePicURL)
}
