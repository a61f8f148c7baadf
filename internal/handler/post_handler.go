package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/repository"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type PostRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=50"`
}

func (h *Handlers) parsePostRequest(w http.ResponseWriter, r *http.Request) (*PostRequest, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return nil, false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid post data", http.StatusBadRequest)
		return nil, false
	}

	errs := validation.NewFieldErrors()
	req.Title = validation.CheckTitle("title", req.Title, errs)
	validation.CheckFreeText("content", req.Content, errs)
	for _, tag := range req.Tags {
		validation.CheckFreeText("tags", tag, errs)
	}
	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return nil, false
	}

	return &req, true
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindPost}) {
		return
	}

	limit, offset := h.pagination(r)

	posts, err := h.PostRepo.List(r.Context(), repository.PostListOptions{
		AuthorID: r.URL.Query().Get("author"),
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermCreate, authz.Resource{Kind: authz.KindPost}) {
		return
	}

	req, ok := h.parsePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID: principal(r).UserID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindPost}) {
		return
	}

	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPostDetail(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	// ownership check needs the stored author
	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindPost, OwnerID: post.AuthorID}) {
		return
	}

	req, ok := h.parsePostRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindPost, OwnerID: post.AuthorID}) {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	like, err := h.PostService.LikePost(r.Context(), postID, p.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, like, http.StatusCreated)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.UnlikePost(r.Context(), postID, p.UserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Feed returns posts by users the principal follows, newest first.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	limit, offset := h.pagination(r)

	posts, err := h.PostService.Feed(r.Context(), p.UserID, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}
