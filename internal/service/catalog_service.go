package service

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/models"
	"bookhub/internal/repository"
)

type CreateAuthorRequest struct {
	Name      string
	Bio       string
	BirthDate *time.Time
}

type CreateBookRequest struct {
	AuthorID        string
	Title           string
	ISBN            *string
	PublicationYear int
	Pages           *int
	Description     string
}

type CreateLibraryRequest struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type AssignLibrarianRequest struct {
	LibraryID string
	Name      string
	Email     string
}

type CatalogService interface {
	CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*models.Author, error)
	GetAuthorWithBooks(ctx context.Context, authorID string) (*models.Author, error)
	UpdateAuthor(ctx context.Context, authorID string, req CreateAuthorRequest) (*models.Author, error)
	DeleteAuthor(ctx context.Context, authorID string) error

	CreateBook(ctx context.Context, req CreateBookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, bookID string, req CreateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, bookID string) error

	CreateLibrary(ctx context.Context, req CreateLibraryRequest) (*models.Library, error)
	GetLibraryDetail(ctx context.Context, libraryID string) (*models.Library, error)
	UpdateLibrary(ctx context.Context, libraryID string, req CreateLibraryRequest) (*models.Library, error)
	DeleteLibrary(ctx context.Context, libraryID string) error
	ShelveBook(ctx context.Context, libraryID, bookID string) (bool, error)
	UnshelveBook(ctx context.Context, libraryID, bookID string) error
	AssignLibrarian(ctx context.Context, req AssignLibrarianRequest) (*models.Librarian, error)
}

type catalogService struct {
	authorRepo  repository.AuthorRepository
	bookRepo    repository.BookRepository
	libraryRepo repository.LibraryRepository
}

func NewCatalogService(authorRepo repository.AuthorRepository, bookRepo repository.BookRepository,
	libraryRepo repository.LibraryRepository) CatalogService {
	return &catalogService{
		authorRepo:  authorRepo,
		bookRepo:    bookRepo,
		libraryRepo: libraryRepo,
	}
}

func (s *catalogService) CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*models.Author, error) {
	author := &models.Author{
		Name:      req.Name,
		Bio:       req.Bio,
		BirthDate: req.BirthDate,
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthorWithBooks returns the author with their books embedded, title
// order.
func (s *catalogService) GetAuthorWithBooks(ctx context.Context, authorID string) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	author.Books = books

	return author, nil
}

func (s *catalogService) UpdateAuthor(ctx context.Context, authorID string, req CreateAuthorRequest) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	author.Name = req.Name
	author.Bio = req.Bio
	author.BirthDate = req.BirthDate

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// DeleteAuthor removes the author; their books are removed by the store's
// cascade.
func (s *catalogService) DeleteAuthor(ctx context.Context, authorID string) error {
	return s.authorRepo.Delete(ctx, authorID)
}

func (s *catalogService) CreateBook(ctx context.Context, req CreateBookRequest) (*models.Book, error) {
	// the referenced author must exist before the insert
	if _, err := s.authorRepo.GetByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	book := &models.Book{
		AuthorID:        req.AuthorID,
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Pages:           req.Pages,
		Description:     req.Description,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, bookID string, req CreateBookRequest) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.AuthorID != book.AuthorID {
		if _, err := s.authorRepo.GetByID(ctx, req.AuthorID); err != nil {
			return nil, err
		}
	}

	book.AuthorID = req.AuthorID
	book.Title = req.Title
	book.ISBN = req.ISBN
	book.PublicationYear = req.PublicationYear
	book.Pages = req.Pages
	book.Description = req.Description

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *catalogService) DeleteBook(ctx context.Context, bookID string) error {
	return s.bookRepo.Delete(ctx, bookID)
}

func (s *catalogService) CreateLibrary(ctx context.Context, req CreateLibraryRequest) (*models.Library, error) {
	library := &models.Library{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := s.libraryRepo.Create(ctx, library); err != nil {
		return nil, err
	}

	return library, nil
}

// GetLibraryDetail embeds the library's books and, when assigned, its
// librarian.
func (s *catalogService) GetLibraryDetail(ctx context.Context, libraryID string) (*models.Library, error) {
	library, err := s.libraryRepo.GetByID(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	books, err := s.libraryRepo.ListBooks(ctx, libraryID)
	if err != nil {
		return nil, err
	}
	library.Books = books

	librarian, err := s.libraryRepo.GetLibrarian(ctx, libraryID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		library.Librarian = librarian
	}

	return library, nil
}

func (s *catalogService) UpdateLibrary(ctx context.Context, libraryID string, req CreateLibraryRequest) (*models.Library, error) {
	library, err := s.libraryRepo.GetByID(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	library.Name = req.Name
	library.Address = req.Address
	library.Phone = req.Phone
	library.Email = req.Email

	if err := s.libraryRepo.Update(ctx, library); err != nil {
		return nil, err
	}

	return library, nil
}

func (s *catalogService) DeleteLibrary(ctx context.Context, libraryID string) error {
	return s.libraryRepo.Delete(ctx, libraryID)
}

func (s *catalogService) ShelveBook(ctx context.Context, libraryID, bookID string) (bool, error) {
	if _, err := s.libraryRepo.GetByID(ctx, libraryID); err != nil {
		return false, err
	}
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return false, err
	}

	return s.libraryRepo.AddBook(ctx, libraryID, bookID)
}

func (s *catalogService) UnshelveBook(ctx context.Context, libraryID, bookID string) error {
	return s.libraryRepo.RemoveBook(ctx, libraryID, bookID)
}

func (s *catalogService) AssignLibrarian(ctx context.Context, req AssignLibrarianRequest) (*models.Librarian, error) {
	if _, err := s.libraryRepo.GetByID(ctx, req.LibraryID); err != nil {
		return nil, err
	}

	librarian := &models.Librarian{
		Name:      req.Name,
		Email:     req.Email,
		LibraryID: req.LibraryID,
	}

	if err := s.libraryRepo.AssignLibrarian(ctx, librarian); err != nil {
		return nil, err
	}

	return librarian, nil
}
