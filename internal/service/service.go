package service

import (
	"bookhub/internal/config"
	"bookhub/internal/repository"
	"bookhub/internal/storage"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Post         PostService
	Notification NotificationService
	Tables       TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User, rep.Follow, rep.Notification, storage),
		Catalog:      NewCatalogService(rep.Author, rep.Book, rep.Library),
		Post:         NewPostService(rep.Post, rep.Comment, rep.Like, rep.Notification),
		Notification: NewNotificationService(rep.Notification),
		Tables:       NewTablesService(rep.Tables),
	}
}
