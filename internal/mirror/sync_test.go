package mirror

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avoronova/postmirror/internal/remote"
	"github.com/avoronova/postmirror/internal/storage"
	"github.com/avoronova/postmirror/internal/storage/entity"
)

func setupSyncer(t *testing.T) (*Syncer, *storage.Storage) {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	st := storage.NewStorage(ctx, zap.NewNop())
	require.NoError(t, st.Connect(dsn))
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.DropTables(ctx))
	require.NoError(t, st.CreateTables(ctx))

	return NewSyncer(zap.NewNop().Sugar(), st), st
}

func countRows(t *testing.T, st *storage.Storage) (users, posts int64) {
	t.Helper()
	require.NoError(t, st.Begin(context.Background(), func(tx pgx.Tx) error {
		var err error
		if users, err = entity.CountUsers(context.Background(), tx); err != nil {
			return err
		}
		posts, err = entity.CountPosts(context.Background(), tx)
		return err
	}))
	return users, posts
}

func TestSyncUsersIdempotent(t *testing.T) {
	s, st := setupSyncer(t)
	ctx := context.Background()

	input := []remote.User{{ID: 1, Name: "A", Username: "a", Email: "a@x.com"}}

	n, err := s.SyncUsers(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	users, _ := countRows(t, st)
	assert.Equal(t, int64(1), users)

	// Second run with the same input skips every record.
	n, err = s.SyncUsers(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	users, _ = countRows(t, st)
	assert.Equal(t, int64(1), users)
}

func TestSyncUsersSkipsExistingWithoutUpdate(t *testing.T) {
	s, st := setupSyncer(t)
	ctx := context.Background()

	_, err := s.SyncUsers(ctx, []remote.User{{ID: 1, Name: "A", Username: "a", Email: "a@x.com"}})
	require.NoError(t, err)

	// Same id, different fields: first write wins.
	_, err = s.SyncUsers(ctx, []remote.User{{ID: 1, Name: "Z", Username: "z", Email: "z@x.com"}})
	require.NoError(t, err)

	require.NoError(t, st.Begin(ctx, func(tx pgx.Tx) error {
		u, err := entity.FindUser(ctx, tx, 1)
		require.NoError(t, err)
		assert.Equal(t, "A", u.Name)
		assert.Equal(t, "a", u.Username)
		return nil
	}))
}

func TestSyncUsersBatchRollsBackWhole(t *testing.T) {
	s, st := setupSyncer(t)
	ctx := context.Background()

	// The second record reuses the first record's email; the unique violation
	// must roll back the first record too.
	input := []remote.User{
		{ID: 10, Name: "N", Username: "n", Email: "n@x.com"},
		{ID: 11, Name: "M", Username: "m", Email: "n@x.com"},
	}

	usersBefore, _ := countRows(t, st)

	n, err := s.SyncUsers(ctx, input)
	require.Error(t, err)
	assert.True(t, storage.IsUniqueViolation(err))
	assert.Zero(t, n)

	usersAfter, _ := countRows(t, st)
	assert.Equal(t, usersBefore, usersAfter)
}

func TestSyncPostsRequiresCommittedUsers(t *testing.T) {
	s, st := setupSyncer(t)
	ctx := context.Background()

	n, err := s.SyncPosts(ctx, []remote.Post{{ID: 1, UserID: 99, Title: "t", Body: "b"}})
	require.Error(t, err)
	assert.True(t, storage.IsForeignKeyViolation(err))
	assert.Zero(t, n)

	_, posts := countRows(t, st)
	assert.Zero(t, posts)
}

func TestSyncUsersThenPosts(t *testing.T) {
	s, st := setupSyncer(t)
	ctx := context.Background()

	nu, err := s.SyncUsers(ctx, []remote.User{
		{ID: 1, Name: "A", Username: "a", Email: "a@x.com"},
		{ID: 2, Name: "B", Username: "b", Email: "b@x.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, nu)

	np, err := s.SyncPosts(ctx, []remote.Post{
		{ID: 1, UserID: 1, Title: "one", Body: "body"},
		{ID: 2, UserID: 2, Title: "two", Body: "body"},
		{ID: 3, UserID: 1, Title: "three", Body: "body"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, np)

	users, posts := countRows(t, st)
	assert.Equal(t, int64(2), users)
	assert.Equal(t, int64(3), posts)
}
