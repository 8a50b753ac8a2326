package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/micronotes/internal/common"
	"github.com/dmitrijs2005/micronotes/internal/dbx"
)

const savedAtKey = common.TokenKey + "_saved_at"

// SQLiteStore persists the token in the local metadata table, so it
// survives restarts. The token and its save time change together.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, []byte(s.now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.TokenKey, savedAtKey)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SavedAt reports when the current token was stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read token timestamp: %w", err)
	}
	if v == nil {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse token timestamp: %w", err)
	}
	return t, true, nil
}
