package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookhub/internal/models"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like and reports whether a new row was created.
// The UNIQUE(post_id, user_id) constraint plus ON CONFLICT DO NOTHING
// makes a concurrent double-like yield exactly one row.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) (bool, error) {
	if like.LikeID == "" {
		like.LikeID = uuid.New().String()
	}
	like.CreatedAt = time.Now()

	query := `
		INSERT INTO likes (like_id, post_id, user_id, created_at)
		VALUES (:like_id, :post_id, :user_id, :created_at)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	result, err := r.db.NamedExecContext(ctx, query, like)
	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("like: %w", ErrNotFound)
	}

	return nil
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1`

	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}
