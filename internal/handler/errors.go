package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bookhub/internal/repository"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteFieldErrors sends a 400 with the per-field messages collected
// during validation.
func WriteFieldErrors(w http.ResponseWriter, errs validation.FieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationErrorResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps sentinel errors onto the HTTP taxonomy. Unknown
// errors become a generic 500; the detail goes to the log only.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "resource not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		WriteError(w, "resource already exists", http.StatusConflict)
	case errors.Is(err, service.ErrAlreadyLiked):
		WriteError(w, "post already liked", http.StatusConflict)
	case errors.Is(err, service.ErrAlreadyFollowing):
		WriteError(w, "already following this user", http.StatusConflict)
	case errors.Is(err, service.ErrSelfFollow):
		WriteError(w, "cannot follow yourself", http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
