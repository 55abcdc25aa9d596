package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyAccessExpiry = "access_expiry"
)

// SQLiteTokenStore persists the pair in the local metadata table so a CLI
// session survives restarts. The table holds nothing but the pair.
type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (TokenPair, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("load access token: %w", err)
	}
	if len(access) == 0 {
		return TokenPair{}, nil
	}
	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("load refresh token: %w", err)
	}
	pair := TokenPair{AccessToken: string(access), RefreshToken: string(refresh)}

	expiry, err := repo.Get(ctx, keyAccessExpiry)
	if err != nil {
		return TokenPair{}, fmt.Errorf("load token expiry: %w", err)
	}
	if len(expiry) > 0 {
		if t, err := time.Parse(time.RFC3339, string(expiry)); err == nil {
			pair.Expiry = t
		}
	}
	return pair, nil
}

// Save replaces the stored pair in one transaction.
func (s *SQLiteTokenStore) Save(ctx context.Context, pair TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(pair.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyRefreshToken, []byte(pair.RefreshToken)); err != nil {
			return err
		}
		if pair.Expiry.IsZero() {
			return repo.Delete(ctx, keyAccessExpiry)
		}
		return repo.Set(ctx, keyAccessExpiry, []byte(pair.Expiry.UTC().Format(time.RFC3339)))
	})
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}
