package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhub/internal/models"
)

func TestLikeRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewLikeRepository(sqlxDB)

	ctx := context.Background()

	t.Run("first like inserts a row", func(t *testing.T) {
		like := &models.Like{PostID: "post-1", UserID: "user-1"}

		mock.ExpectExec("INSERT INTO likes").
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.Create(ctx, like)

		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, like.LikeID)
	})

	t.Run("second like hits the conflict and inserts nothing", func(t *testing.T) {
		like := &models.Like{PostID: "post-1", UserID: "user-1"}

		mock.ExpectExec("INSERT INTO likes").
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.Create(ctx, like)

		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestLikeRepository_CountByPostID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewLikeRepository(sqlxDB)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM likes").
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByPostID(context.Background(), "post-1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
