package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// setupDB opens a private in-memory database and applies the real migrations.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func TestSetAndGet_Token(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.AccessTokenKey, []byte("tok-1")))

	v, err := r.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)
}

func TestGet_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.AccessTokenKey, []byte("old")))
	require.NoError(t, r.Set(ctx, common.AccessTokenKey, []byte("new")))

	v, err := r.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.AccessTokenKey, []byte("tok")))
	require.NoError(t, r.Delete(ctx, common.AccessTokenKey))

	v, err := r.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, common.AccessTokenKey))
	require.NoError(t, r.Delete(ctx))
}

func TestDelete_ManyKeysLeavesOthers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.AccessTokenKey, []byte("tok")))
	require.NoError(t, r.Set(ctx, common.TokenSavedAtKey, []byte("2026-01-02T03:04:05Z")))
	require.NoError(t, r.Set(ctx, common.SessionEmailKey, []byte("ann@example.com")))
	require.NoError(t, r.Set(ctx, "unrelated", []byte("keep")))

	require.NoError(t, r.Delete(ctx, common.AccessTokenKey, common.TokenSavedAtKey, common.SessionEmailKey))

	for _, k := range []string{common.AccessTokenKey, common.TokenSavedAtKey, common.SessionEmailKey} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
	v, err := r.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
}

func TestSQLiteFactory_WorksInsideTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, SQLite(tx).Set(ctx, "k", []byte("v")))
	require.NoError(t, tx.Rollback())

	v, err := SQLite(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v, "rolled back write must not be visible")
}

func TestRepository_ErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k", "j"), "failed to delete metadata[k j]")
}
