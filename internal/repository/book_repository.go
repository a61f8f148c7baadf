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

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepository{db: db}
}

var bookOrderColumns = map[string]string{
	"title":            "b.title",
	"publication_year": "b.publication_year",
	"created_at":       "b.created_at",
	"pages":            "b.pages",
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if book.BookID == "" {
		book.BookID = uuid.New().String()
	}

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	query := `
		INSERT INTO books (book_id, author_id, title, isbn, publication_year, pages,
			description, created_at, updated_at)
		VALUES (:book_id, :author_id, :title, :isbn, :publication_year, :pages,
			:description, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("book with this title or ISBN: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, bookID string) (*models.Book, error) {
	var book models.Book

	query := `SELECT * FROM books WHERE book_id = $1`

	err := r.db.GetContext(ctx, &book, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %s: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book, nil
}

// List filters by author and publication year, searches title and author
// name case-insensitively and sorts by a whitelisted key, title ascending
// by default.
func (r *bookRepository) List(ctx context.Context, opts BookListOptions) ([]models.Book, error) {
	var books []models.Book

	var year int
	if opts.PublicationYear != nil {
		year = *opts.PublicationYear
	}

	query := fmt.Sprintf(`
		SELECT b.* FROM books b
		JOIN authors a ON a.author_id = b.author_id
		WHERE ($1 = '' OR b.author_id::text = $1)
		AND ($2 = 0 OR b.publication_year = $2)
		AND ($3 = '' OR b.title ILIKE '%%' || $3 || '%%' OR a.name ILIKE '%%' || $3 || '%%')
		ORDER BY %s
		LIMIT $4 OFFSET $5
	`, orderClause(opts.Ordering, "b.title ASC", bookOrderColumns))

	err := r.db.SelectContext(ctx, &books, query, opts.AuthorID, year, opts.Search, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

func (r *bookRepository) ListByAuthorID(ctx context.Context, authorID string) ([]models.Book, error) {
	var books []models.Book

	query := `SELECT * FROM books WHERE author_id = $1 ORDER BY title`

	err := r.db.SelectContext(ctx, &books, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}

	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	book.UpdatedAt = time.Now()

	query := `
		UPDATE books
		SET author_id = :author_id, title = :title, isbn = :isbn,
			publication_year = :publication_year, pages = :pages,
			description = :description, updated_at = :updated_at
		WHERE book_id = :book_id
	`

	result, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("book with this title or ISBN: %w", ErrConflict)
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("book %s: %w", book.BookID, ErrNotFound)
	}

	return nil
}

func (r *bookRepository) Delete(ctx context.Context, bookID string) error {
	query := `DELETE FROM books WHERE book_id = $1`

	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
	}

	return nil
}
