package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookhub/internal/models"
)

type authorRepository struct {
	db *sqlx.DB
}

func NewAuthorRepository(db *sqlx.DB) AuthorRepository {
	return &authorRepository{db: db}
}

var authorOrderColumns = map[string]string{
	"name":       "name",
	"birth_date": "birth_date",
	"created_at": "created_at",
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if author.AuthorID == "" {
		author.AuthorID = uuid.New().String()
	}

	now := time.Now()
	author.CreatedAt = now
	author.UpdatedAt = now

	query := `
		INSERT INTO authors (author_id, name, bio, birth_date, created_at, updated_at)
		VALUES (:author_id, :name, :bio, :birth_date, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, author)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("author with name %q: %w", author.Name, ErrConflict)
		}
		return fmt.Errorf("failed to create author: %w", err)
	}

	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, authorID string) (*models.Author, error) {
	var author models.Author

	query := `SELECT * FROM authors WHERE author_id = $1`

	err := r.db.GetContext(ctx, &author, query, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("author %s: %w", authorID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, opts AuthorListOptions) ([]models.Author, error) {
	var authors []models.Author

	query := fmt.Sprintf(`
		SELECT * FROM authors
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, orderClause(opts.Ordering, "name ASC", authorOrderColumns))

	err := r.db.SelectContext(ctx, &authors, query, opts.Search, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	author.UpdatedAt = time.Now()

	query := `
		UPDATE authors
		SET name = :name, bio = :bio, birth_date = :birth_date, updated_at = :updated_at
		WHERE author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, author)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("author with name %q: %w", author.Name, ErrConflict)
		}
		return fmt.Errorf("failed to update author: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("author %s: %w", author.AuthorID, ErrNotFound)
	}

	return nil
}

// Delete removes the author; the books foreign key cascades, so all of
// the author's books go with it.
func (r *authorRepository) Delete(ctx context.Context, authorID string) error {
	query := `DELETE FROM authors WHERE author_id = $1`

	result, err := r.db.ExecContext(ctx, query, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("author %s: %w", authorID, ErrNotFound)
	}

	return nil
}
