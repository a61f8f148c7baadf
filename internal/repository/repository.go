package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bookhub/internal/models"
)

// Sentinel errors mapped by handlers onto the HTTP error taxonomy.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// orderClause resolves a client-supplied sort key against a whitelist of
// column names. A "-" prefix selects descending order. Unknown keys fall
// back to the default clause, so user input never reaches the SQL text.
func orderClause(ordering, defaultClause string, allowed map[string]string) string {
	if ordering == "" {
		return defaultClause
	}

	direction := "ASC"
	key := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		key = ordering[1:]
	}

	column, ok := allowed[key]
	if !ok {
		return defaultClause
	}

	return column + " " + direction
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID string) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Following(ctx context.Context, userID string) ([]models.User, error)
	Followers(ctx context.Context, userID string) ([]models.User, error)
}

type AuthorListOptions struct {
	Search   string
	Ordering string
	Limit    int
	Offset   int
}

type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, authorID string) (*models.Author, error)
	List(ctx context.Context, opts AuthorListOptions) ([]models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, authorID string) error
}

type BookListOptions struct {
	AuthorID        string
	PublicationYear *int
	Search          string
	Ordering        string
	Limit           int
	Offset          int
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, bookID string) (*models.Book, error)
	List(ctx context.Context, opts BookListOptions) ([]models.Book, error)
	ListByAuthorID(ctx context.Context, authorID string) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, bookID string) error
}

type LibraryRepository interface {
	Create(ctx context.Context, library *models.Library) error
	GetByID(ctx context.Context, libraryID string) (*models.Library, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Library, error)
	Update(ctx context.Context, library *models.Library) error
	Delete(ctx context.Context, libraryID string) error
	AddBook(ctx context.Context, libraryID, bookID string) (bool, error)
	RemoveBook(ctx context.Context, libraryID, bookID string) error
	ListBooks(ctx context.Context, libraryID string) ([]models.Book, error)
	AssignLibrarian(ctx context.Context, librarian *models.Librarian) error
	GetLibrarian(ctx context.Context, libraryID string) (*models.Librarian, error)
}

type PostListOptions struct {
	AuthorID string
	Search   string
	Ordering string
	Limit    int
	Offset   int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, opts PostListOptions) ([]models.Post, error)
	Feed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
}

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) (bool, error)
	Delete(ctx context.Context, postID, userID string) error
	CountByPostID(ctx context.Context, postID string) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipientID(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

type Repository struct {
	User         UserRepository
	Follow       FollowRepository
	Author       AuthorRepository
	Book         BookRepository
	Library      LibraryRepository
	Post         PostRepository
	Comment      CommentRepository
	Like         LikeRepository
	Notification NotificationRepository
	Tables       TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Follow:       NewFollowRepository(db),
		Author:       NewAuthorRepository(db),
		Book:         NewBookRepository(db),
		Library:      NewLibraryRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Notification: NewNotificationRepository(db),
		Tables:       NewTablesRepository(db),
	}
}
