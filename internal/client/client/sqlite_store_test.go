package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTokenStore(t *testing.T) (*SQLiteTokenStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteTokenStore(db), mock
}

func TestSQLiteTokenStore_SaveCommitsPair(t *testing.T) {
	store, mock := newMockTokenStore(t)
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(keyAccessToken, []byte("A2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(keyRefreshToken, []byte("R2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(keyAccessExpiry, []byte("2030-01-02T03:04:05Z")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), TokenPair{AccessToken: "A2", RefreshToken: "R2", Expiry: expiry}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteTokenStore_SaveRollsBackHalfWrittenPair(t *testing.T) {
	store, mock := newMockTokenStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(keyAccessToken, []byte("A2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(keyRefreshToken, []byte("R2")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), TokenPair{AccessToken: "A2", RefreshToken: "R2"})
	require.ErrorContains(t, err, "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteTokenStore_ClearDeletesTable(t *testing.T) {
	store, mock := newMockTokenStore(t)

	mock.ExpectExec(`^DELETE FROM metadata$`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`^DELETE FROM metadata$`).WillReturnError(errors.New("locked"))

	require.NoError(t, store.Clear(context.Background()))
	err := store.Clear(context.Background())
	assert.ErrorContains(t, err, "metadata clear")
	require.NoError(t, mock.ExpectationsWereMet())
}
