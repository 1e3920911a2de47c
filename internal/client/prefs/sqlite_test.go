package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestSQLiteRepository_Get(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT value FROM preferences WHERE key = \?`).
		WithArgs(KeyTheme).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

	v, err := repo.Get(context.Background(), KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT value FROM preferences WHERE key = \?`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_GetQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT value FROM preferences`).
		WithArgs(KeyToken).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Get(context.Background(), KeyToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_SetUpserts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO preferences \(key, value\) VALUES \(\?, \?\)`).
		WithArgs(KeyLanguage, "en").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), KeyLanguage, "en"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM preferences WHERE key = \?`).
		WithArgs(KeyToken).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), KeyToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_SetManyCommitsOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Keys are written in sorted order inside a single transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO preferences \(key, value\) VALUES \(\?, \?\)`).
		WithArgs(KeyLanguage, "en").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO preferences \(key, value\) VALUES \(\?, \?\)`).
		WithArgs(KeyTheme, "dark").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.SetMany(context.Background(), map[string]string{
		KeyTheme:    "dark",
		KeyLanguage: "en",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_SetManyRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO preferences`).
		WithArgs(KeyLanguage, "en").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.SetMany(context.Background(), map[string]string{
		KeyTheme:    "dark",
		KeyLanguage: "en",
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_DeleteManyCommitsOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	for _, key := range []string{KeyToken, KeyCurrentUser, KeyLoginTime} {
		mock.ExpectExec(`DELETE FROM preferences WHERE key = \?`).
			WithArgs(key).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := repo.DeleteMany(context.Background(), KeyToken, KeyCurrentUser, KeyLoginTime)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT key, value FROM preferences`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow(KeyTheme, "dark").
			AddRow(KeyLanguage, "en"))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyTheme: "dark", KeyLanguage: "en"}, all)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM preferences`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
