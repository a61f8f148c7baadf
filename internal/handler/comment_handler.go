package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *Handlers) parseCommentRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return "", false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid comment data", http.StatusBadRequest)
		return "", false
	}

	errs := validation.NewFieldErrors()
	validation.CheckFreeText("content", req.Content, errs)
	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return "", false
	}

	return req.Content, true
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindComment}) {
		return
	}

	postID := mux.Vars(r)["id"]

	comments, err := h.CommentRepo.ListByPostID(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermCreate, authz.Resource{Kind: authz.KindComment}) {
		return
	}

	content, ok := h.parseCommentRequest(w, r)
	if !ok {
		return
	}

	postID := mux.Vars(r)["id"]

	comment, err := h.PostService.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   postID,
		AuthorID: principal(r).UserID,
		Content:  content,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindComment, OwnerID: comment.AuthorID}) {
		return
	}

	content, ok := h.parseCommentRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.PostService.UpdateComment(r.Context(), commentID, content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindComment, OwnerID: comment.AuthorID}) {
		return
	}

	if err := h.PostService.DeleteComment(r.Context(), commentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
