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

type libraryRepository struct {
	db *sqlx.DB
}

func NewLibraryRepository(db *sqlx.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Create(ctx context.Context, library *models.Library) error {
	if library.LibraryID == "" {
		library.LibraryID = uuid.New().String()
	}

	now := time.Now()
	library.CreatedAt = now
	library.UpdatedAt = now

	query := `
		INSERT INTO libraries (library_id, name, address, phone, email, created_at, updated_at)
		VALUES (:library_id, :name, :address, :phone, :email, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, library)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("library with name %q: %w", library.Name, ErrConflict)
		}
		return fmt.Errorf("failed to create library: %w", err)
	}

	return nil
}

func (r *libraryRepository) GetByID(ctx context.Context, libraryID string) (*models.Library, error) {
	var library models.Library

	query := `SELECT * FROM libraries WHERE library_id = $1`

	err := r.db.GetContext(ctx, &library, query, libraryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("library %s: %w", libraryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get library: %w", err)
	}

	return &library, nil
}

func (r *libraryRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Library, error) {
	var libraries []models.Library

	query := `
		SELECT * FROM libraries
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	err := r.db.SelectContext(ctx, &libraries, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}

	return libraries, nil
}

func (r *libraryRepository) Update(ctx context.Context, library *models.Library) error {
	library.UpdatedAt = time.Now()

	query := `
		UPDATE libraries
		SET name = :name, address = :address, phone = :phone, email = :email,
			updated_at = :updated_at
		WHERE library_id = :library_id
	`

	result, err := r.db.NamedExecContext(ctx, query, library)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("library with name %q: %w", library.Name, ErrConflict)
		}
		return fmt.Errorf("failed to update library: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("library %s: %w", library.LibraryID, ErrNotFound)
	}

	return nil
}

func (r *libraryRepository) Delete(ctx context.Context, libraryID string) error {
	query := `DELETE FROM libraries WHERE library_id = $1`

	result, err := r.db.ExecContext(ctx, query, libraryID)
	if err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("library %s: %w", libraryID, ErrNotFound)
	}

	return nil
}

// AddBook shelves the book and reports whether a new row was created.
func (r *libraryRepository) AddBook(ctx context.Context, libraryID, bookID string) (bool, error) {
	query := `
		INSERT INTO library_books (library_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (library_id, book_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, libraryID, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to add book to library: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *libraryRepository) RemoveBook(ctx context.Context, libraryID, bookID string) error {
	query := `DELETE FROM library_books WHERE library_id = $1 AND book_id = $2`

	result, err := r.db.ExecContext(ctx, query, libraryID, bookID)
	if err != nil {
		return fmt.Errorf("failed to remove book from library: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("book %s in library %s: %w", bookID, libraryID, ErrNotFound)
	}

	return nil
}

func (r *libraryRepository) ListBooks(ctx context.Context, libraryID string) ([]models.Book, error) {
	var books []models.Book

	query := `
		SELECT b.* FROM books b
		JOIN library_books lb ON lb.book_id = b.book_id
		WHERE lb.library_id = $1
		ORDER BY b.title
	`

	err := r.db.SelectContext(ctx, &books, query, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list library books: %w", err)
	}

	return books, nil
}

// AssignLibrarian upserts the library's single librarian. The unique
// constraint on library_id keeps the relation one-to-one.
func (r *libraryRepository) AssignLibrarian(ctx context.Context, librarian *models.Librarian) error {
	if librarian.LibrarianID == "" {
		librarian.LibrarianID = uuid.New().String()
	}
	librarian.CreatedAt = time.Now()

	query := `
		INSERT INTO librarians (librarian_id, name, email, library_id, created_at)
		VALUES (:librarian_id, :name, :email, :library_id, :created_at)
		ON CONFLICT (library_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email
	`

	_, err := r.db.NamedExecContext(ctx, query, librarian)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("librarian email already taken: %w", ErrConflict)
		}
		return fmt.Errorf("failed to assign librarian: %w", err)
	}

	return nil
}

func (r *libraryRepository) GetLibrarian(ctx context.Context, libraryID string) (*models.Librarian, error) {
	var librarian models.Librarian

	query := `SELECT * FROM librarians WHERE library_id = $1`

	err := r.db.GetContext(ctx, &librarian, query, libraryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("librarian for library %s: %w", libraryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get librarian: %w", err)
	}

	return &librarian, nil
}
