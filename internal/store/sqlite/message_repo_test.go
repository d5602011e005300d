package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapi/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUsers(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()

	users := NewUserRepo(db)
	for _, id := range ids {
		require.NoError(t, users.Create(context.Background(), &domain.User{
			ID:             id,
			Email:          id + "@example.com",
			FullName:       id,
			HashedPassword: "x",
		}))
	}
}

func TestMessageRepoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice", "bob")
	repo := NewMessageRepo(db)
	ctx := context.Background()

	m := &domain.Message{SenderID: "alice", ReceiverID: "bob", Text: "hi"}
	require.NoError(t, repo.Create(ctx, m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hi", got.Text)
	assert.False(t, got.Seen)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepoListBetween(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice", "bob", "carol")
	repo := NewMessageRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msgs := []*domain.Message{
		{SenderID: "alice", ReceiverID: "bob", Text: "one", CreatedAt: base},
		{SenderID: "bob", ReceiverID: "alice", Text: "two", CreatedAt: base.Add(time.Minute)},
		{SenderID: "alice", ReceiverID: "carol", Text: "other pair", CreatedAt: base.Add(2 * time.Minute)},
		{SenderID: "alice", ReceiverID: "bob", Text: "three", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, m := range msgs {
		require.NoError(t, repo.Create(ctx, m))
	}

	got, err := repo.ListBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "two", got[1].Text)
	assert.Equal(t, "three", got[2].Text)

	// Symmetric regardless of argument order.
	flipped, err := repo.ListBetween(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Len(t, flipped, 3)
}

func TestMessageRepoSeenState(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice", "bob")
	repo := NewMessageRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &domain.Message{
			SenderID:   "bob",
			ReceiverID: "alice",
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// One in the opposite direction; must stay untouched by the bulk mark.
	reply := &domain.Message{SenderID: "alice", ReceiverID: "bob", Text: "reply", CreatedAt: base.Add(4 * time.Minute)}
	require.NoError(t, repo.Create(ctx, reply))

	count, err := repo.CountUnseen(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkAllSeenBetween(ctx, "bob", "alice"))

	count, err = repo.CountUnseen(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.CountUnseen(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMessageRepoMarkSeen(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, "alice", "bob")
	repo := NewMessageRepo(db)
	ctx := context.Background()

	m := &domain.Message{SenderID: "bob", ReceiverID: "alice", Text: "hi"}
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.MarkSeen(ctx, m.ID))
	// Repeating the transition is harmless.
	require.NoError(t, repo.MarkSeen(ctx, m.ID))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Seen)
}
