package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bookhub/internal/models"
	"bookhub/internal/repository"
	"bookhub/internal/storage"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ErrAlreadyFollowing is returned when the follow relation already exists.
var ErrAlreadyFollowing = errors.New("already following this user")

type UpdateProfileRequest struct {
	UserID      string
	Email       string
	Bio         string
	DateOfBirth *time.Time
	// Role is applied only when the caller is an admin; handlers pass an
	// empty string otherwise.
	Role string
}

type UserService interface {
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	FollowUser(ctx context.Context, followerID, followeeID string) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
}

type userService struct {
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
	storage          storage.Storage
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		storage:          storage,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.Bio = req.Bio
	user.DateOfBirth = req.DateOfBirth
	if req.Role != "" {
		user.Role = req.Role
	}

	err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}

// FollowUser creates the follow relation and notifies the followee.
// Following yourself is rejected; following twice is a conflict.
func (s *userService) FollowUser(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	// verify the followee exists so a dangling id maps to 404
	if _, err := s.userRepo.GetUserByID(ctx, followeeID); err != nil {
		return err
	}

	created, err := s.followRepo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !created {
		return ErrAlreadyFollowing
	}

	notification := &models.Notification{
		RecipientID: followeeID,
		ActorID:     followerID,
		Verb:        "followed you",
		TargetType:  "user",
		TargetID:    followeeID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		// the follow itself succeeded; losing the notification is logged upstream
		return fmt.Errorf("follow created but notification failed: %w", err)
	}

	return nil
}

func (s *userService) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

func (s *userService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	objectName, avatarURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		s.storage.DeleteObject(ctx, objectName)
		return "", fmt.Errorf("failed to store avatar URL: %w", err)
	}

	return avatarURL, nil
}
