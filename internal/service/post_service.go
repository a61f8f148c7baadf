package service

import (
	"context"
	"errors"
	"fmt"

	"bookhub/internal/models"
	"bookhub/internal/repository"
)

// ErrAlreadyLiked is returned when a user likes the same post twice.
var ErrAlreadyLiked = errors.New("post already liked")

type CreatePostRequest struct {
	AuthorID string
	Title    string
	Content  string
	Tags     []string
}

type UpdatePostRequest struct {
	PostID  string
	Title   string
	Content string
	Tags    []string
}

type CreateCommentRequest struct {
	PostID   string
	AuthorID string
	Content  string
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPostDetail(ctx context.Context, postID string) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error

	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, commentID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error

	LikePost(ctx context.Context, postID, userID string) (*models.Like, error)
	UnlikePost(ctx context.Context, postID, userID string) error

	Feed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
}

type postService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	likeRepo         repository.LikeRepository
	notificationRepo repository.NotificationRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository, notificationRepo repository.NotificationRepository) PostService {
	return &postService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		likeRepo:         likeRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPostDetail loads the post with its comments and like count.
func (s *postService) GetPostDetail(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	likeCount, err := s.likeRepo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.LikeCount = likeCount

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Content = req.Content
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID string) error {
	return s.postRepo.Delete(ctx, postID)
}

// CreateComment stores the comment and notifies the post's author unless
// they commented on their own post.
func (s *postService) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != req.AuthorID {
		notification := &models.Notification{
			RecipientID: post.AuthorID,
			ActorID:     req.AuthorID,
			Verb:        "commented on your post",
			TargetType:  "post",
			TargetID:    post.PostID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return nil, fmt.Errorf("comment created but notification failed: %w", err)
		}
	}

	return comment, nil
}

func (s *postService) UpdateComment(ctx context.Context, commentID, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *postService) DeleteComment(ctx context.Context, commentID string) error {
	return s.commentRepo.Delete(ctx, commentID)
}

// LikePost records the like exactly once per (post, user) pair; a second
// attempt returns ErrAlreadyLiked. The author gets a notification unless
// they liked their own post.
func (s *postService) LikePost(ctx context.Context, postID, userID string) (*models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := &models.Like{
		PostID: postID,
		UserID: userID,
	}

	created, err := s.likeRepo.Create(ctx, like)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyLiked
	}

	if post.AuthorID != userID {
		notification := &models.Notification{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			Verb:        "liked your post",
			TargetType:  "post",
			TargetID:    post.PostID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return nil, fmt.Errorf("like created but notification failed: %w", err)
		}
	}

	return like, nil
}

func (s *postService) UnlikePost(ctx context.Context, postID, userID string) error {
	return s.likeRepo.Delete(ctx, postID, userID)
}

func (s *postService) Feed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	return s.postRepo.Feed(ctx, userID, limit, offset)
}
