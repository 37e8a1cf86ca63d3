package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/internal/model"
	"cookbook/internal/repository"
)

var userColumns = []string{"id", "name", "created_at", "updated_at"}

func newMock(t *testing.T) (*UserPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserPostgres(db), mock
}

func TestUserPostgres_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	u := &model.User{ID: "test-uuid", Name: "Alice", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.CreatedAt, u.UpdatedAt).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(u.ID, u.Name, now, now))

	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("test-id", "Alice", time.Now(), time.Now()))

		u, err := repo.FindByID(ctx, "test-id")
		require.NoError(t, err)
		assert.Equal(t, "test-id", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, u)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("a", "Alice", time.Now(), time.Now()).
			AddRow("b", "Bob", time.Now(), time.Now()))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListQueryError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(errors.New("conn reset"))

	_, err := repo.List(context.Background())
	assert.EqualError(t, err, "conn reset")
}

func TestUserPostgres_Update(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE users SET name").
		WithArgs("test-id", "Bob", now).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("test-id", "Bob", now, now))

	got, err := repo.Update(context.Background(), &model.User{ID: "test-id", Name: "Bob", UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	mock.ExpectQuery("UPDATE users SET name").
		WithArgs("missing", "Bob", now).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Update(context.Background(), &model.User{ID: "missing", Name: "Bob", UpdatedAt: now})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "test-id"))

	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
