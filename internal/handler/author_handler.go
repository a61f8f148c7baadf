package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/repository"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type AuthorRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birthDate"`
}

func (h *Handlers) parseAuthorRequest(w http.ResponseWriter, r *http.Request) (*service.CreateAuthorRequest, bool) {
	var req AuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return nil, false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid author data", http.StatusBadRequest)
		return nil, false
	}

	errs := validation.NewFieldErrors()
	name := validation.CheckTitle("name", req.Name, errs)
	validation.CheckFreeText("bio", req.Bio, errs)

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			errs.Add("birthDate", "must be a date in YYYY-MM-DD format")
		} else {
			birthDate = &parsed
		}
	}

	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return nil, false
	}

	return &service.CreateAuthorRequest{
		Name:      name,
		Bio:       req.Bio,
		BirthDate: birthDate,
	}, true
}

func (h *Handlers) ListAuthors(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindAuthor}) {
		return
	}

	limit, offset := h.pagination(r)

	authors, err := h.AuthorRepo.List(r.Context(), repository.AuthorListOptions{
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, authors, http.StatusOK)
}

func (h *Handlers) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermCreate, authz.Resource{Kind: authz.KindAuthor}) {
		return
	}

	req, ok := h.parseAuthorRequest(w, r)
	if !ok {
		return
	}

	author, err := h.CatalogService.CreateAuthor(r.Context(), *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, author, http.StatusCreated)
}

func (h *Handlers) GetAuthor(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindAuthor}) {
		return
	}

	authorID := mux.Vars(r)["id"]

	author, err := h.CatalogService.GetAuthorWithBooks(r.Context(), authorID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, author, http.StatusOK)
}

func (h *Handlers) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindAuthor}) {
		return
	}

	req, ok := h.parseAuthorRequest(w, r)
	if !ok {
		return
	}

	authorID := mux.Vars(r)["id"]

	author, err := h.CatalogService.UpdateAuthor(r.Context(), authorID, *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, author, http.StatusOK)
}

// DeleteAuthor removes the author and, through the store's cascade, all
// of their books.
func (h *Handlers) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindAuthor}) {
		return
	}

	authorID := mux.Vars(r)["id"]

	if err := h.CatalogService.DeleteAuthor(r.Context(), authorID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
