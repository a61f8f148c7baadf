package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bookhub/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the relation and reports whether a new row was created.
// ON CONFLICT DO NOTHING makes concurrent duplicate follows race-free.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID string) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to follow user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("follow relation: %w", ErrNotFound)
	}

	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int

	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND followee_id = $2`

	err := r.db.GetContext(ctx, &count, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow relation: %w", err)
	}

	return count > 0, nil
}

func (r *followRepository) Following(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User

	query := `
		SELECT u.* FROM users u
		JOIN follows f ON f.followee_id = u.user_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`

	err := r.db.SelectContext(ctx, &users, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed users: %w", err)
	}

	return users, nil
}

func (r *followRepository) Followers(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User

	query := `
		SELECT u.* FROM users u
		JOIN follows f ON f.follower_id = u.user_id
		WHERE f.followee_id = $1
		ORDER BY u.username
	`

	err := r.db.SelectContext(ctx, &users, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	return users, nil
}
