package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookhub/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	t.Run("generates id and hashes the password", func(t *testing.T) {
		user := &models.User{
			Username: "reader42",
			Email:    "reader@example.com",
			Role:     "Viewer",
		}

		mock.ExpectExec("INSERT INTO users").
			WithArgs(
				sqlmock.AnyArg(), // user_id generated in the repository
				"reader42",
				"reader@example.com",
				sqlmock.AnyArg(), // password_hash
				"Viewer",
				sqlmock.AnyArg(), // bio
				sqlmock.AnyArg(), // avatar_url
				sqlmock.AnyArg(), // date_of_birth
				sqlmock.AnyArg(), // refresh_token
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to ErrConflict", func(t *testing.T) {
		user := &models.User{
			Username: "reader42",
			Email:    "other@example.com",
			Role:     "Viewer",
		}

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"user_id", "username", "email", "password_hash", "role", "bio",
			"avatar_url", "date_of_birth", "refresh_token", "refresh_token_expiry_time", "created_at",
		}).AddRow("user-1", "reader42", "reader@example.com", "hash", "Viewer", "",
			"", nil, "", now, now)

		mock.ExpectQuery("SELECT \\* FROM users WHERE user_id").
			WithArgs("user-1").
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "reader42", user.Username)
		assert.Equal(t, "Viewer", user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM users WHERE user_id").
			WithArgs("no-such-user").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, "no-such-user")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"user_id", "username", "email", "password_hash", "role", "bio",
			"avatar_url", "date_of_birth", "refresh_token", "refresh_token_expiry_time", "created_at",
		}).AddRow("user-1", "reader42", "reader@example.com", string(hash), "Viewer", "",
			"", nil, "", now, now)
	}

	t.Run("correct password", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM users WHERE username").
			WithArgs("reader42").
			WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, "reader42", "password123")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM users WHERE username").
			WithArgs("reader42").
			WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, "reader42", "wrong")

		assert.Nil(t, user)
		assert.Error(t, err)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE user_id").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(ctx, "user-1"))
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE user_id").
			WithArgs("no-such-user").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(ctx, "no-such-user"), ErrNotFound)
	})
}
