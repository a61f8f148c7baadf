package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string     `json:"userId" db:"user_id"`
	Username               string     `json:"username" db:"username"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	Role                   string     `json:"role" db:"role"`
	Bio                    string     `json:"bio" db:"bio"`
	AvatarURL              string     `json:"avatarUrl" db:"avatar_url"`
	DateOfBirth            *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	RefreshToken           string     `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time  `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
}

type Author struct {
	AuthorID  string     `json:"authorId" db:"author_id"`
	Name      string     `json:"name" db:"name"`
	Bio       string     `json:"bio" db:"bio"`
	BirthDate *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	Books     []Book     `json:"books,omitempty" db:"-"`
}

type Book struct {
	BookID          string    `json:"bookId" db:"book_id"`
	AuthorID        string    `json:"authorId" db:"author_id"`
	Title           string    `json:"title" db:"title"`
	ISBN            *string   `json:"isbn,omitempty" db:"isbn"`
	PublicationYear int       `json:"publicationYear" db:"publication_year"`
	Pages           *int      `json:"pages,omitempty" db:"pages"`
	Description     string    `json:"description" db:"description"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type Library struct {
	LibraryID string     `json:"libraryId" db:"library_id"`
	Name      string     `json:"name" db:"name"`
	Address   string     `json:"address" db:"address"`
	Phone     string     `json:"phone" db:"phone"`
	Email     string     `json:"email" db:"email"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	Librarian *Librarian `json:"librarian,omitempty" db:"-"`
	Books     []Book     `json:"books,omitempty" db:"-"`
}

type Librarian struct {
	LibrarianID string    `json:"librarianId" db:"librarian_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	LibraryID   string    `json:"libraryId" db:"library_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    string         `json:"postId" db:"post_id"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
	Comments  []Comment      `json:"comments,omitempty" db:"-"`
	LikeCount int            `json:"likeCount" db:"-"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Like struct {
	LikeID    string    `json:"likeId" db:"like_id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Follow struct {
	FollowerID string    `json:"followerId" db:"follower_id"`
	FolloweeID string    `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Notification struct {
	NotificationID string    `json:"notificationId" db:"notification_id"`
	RecipientID    string    `json:"recipientId" db:"recipient_id"`
	ActorID        string    `json:"actorId" db:"actor_id"`
	Verb           string    `json:"verb" db:"verb"`
	TargetType     string    `json:"targetType" db:"target_type"`
	TargetID       string    `json:"targetId" db:"target_id"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
