// Package metadata is the local key/value store of the client. It keeps the
// few values that must survive a restart: the access token, when it was
// saved and the email of the session.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// Repository reads and writes opaque values by key.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Factory binds a Repository to a connection or a transaction.
type Factory func(db dbx.DBTX) Repository

// SQLite is the Factory of SQLiteRepository.
func SQLite(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}
