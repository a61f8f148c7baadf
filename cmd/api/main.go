package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"bookhub/cmd/app"
	"bookhub/internal/config"
	handlers "bookhub/internal/handler"
	"bookhub/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set in the .env file")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler(db)).Methods(http.MethodGet)
	router.HandleFunc("/tables", handler.TablesHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	api.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/me/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	api.HandleFunc("/users", handler.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}/follow", handler.FollowUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/follow", handler.UnfollowUser).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}/following", handler.ListFollowing).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/followers", handler.ListFollowers).Methods(http.MethodGet)

	api.HandleFunc("/authors", handler.ListAuthors).Methods(http.MethodGet)
	api.HandleFunc("/authors", handler.CreateAuthor).Methods(http.MethodPost)
	api.HandleFunc("/authors/{id}", handler.GetAuthor).Methods(http.MethodGet)
	api.HandleFunc("/authors/{id}", handler.UpdateAuthor).Methods(http.MethodPut)
	api.HandleFunc("/authors/{id}", handler.DeleteAuthor).Methods(http.MethodDelete)

	api.HandleFunc("/books", handler.ListBooks).Methods(http.MethodGet)
	api.HandleFunc("/books", handler.CreateBook).Methods(http.MethodPost)
	api.HandleFunc("/books/{id}", handler.GetBook).Methods(http.MethodGet)
	api.HandleFunc("/books/{id}", handler.UpdateBook).Methods(http.MethodPut)
	api.HandleFunc("/books/{id}", handler.DeleteBook).Methods(http.MethodDelete)

	api.HandleFunc("/libraries", handler.ListLibraries).Methods(http.MethodGet)
	api.HandleFunc("/libraries", handler.CreateLibrary).Methods(http.MethodPost)
	api.HandleFunc("/libraries/{id}", handler.GetLibrary).Methods(http.MethodGet)
	api.HandleFunc("/libraries/{id}", handler.UpdateLibrary).Methods(http.MethodPut)
	api.HandleFunc("/libraries/{id}", handler.DeleteLibrary).Methods(http.MethodDelete)
	api.HandleFunc("/libraries/{id}/books/{bookId}", handler.ShelveBook).Methods(http.MethodPost)
	api.HandleFunc("/libraries/{id}/books/{bookId}", handler.UnshelveBook).Methods(http.MethodDelete)
	api.HandleFunc("/libraries/{id}/librarian", handler.AssignLibrarian).Methods(http.MethodPut)

	api.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/comments", handler.ListComments).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id}", handler.UpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id}", handler.DeleteComment).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/like", handler.UnlikePost).Methods(http.MethodDelete)
	api.HandleFunc("/feed", handler.Feed).Methods(http.MethodGet)

	api.HandleFunc("/notifications", handler.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", handler.MarkNotificationRead).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.SecurityHeadersMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
