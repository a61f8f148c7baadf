package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/repository"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type BookRequest struct {
	AuthorID        string `json:"authorId" validate:"required,uuid4"`
	Title           string `json:"title" validate:"required,max=200"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publicationYear" validate:"required"`
	Pages           *int   `json:"pages"`
	Description     string `json:"description"`
}

func (h *Handlers) parseBookRequest(w http.ResponseWriter, r *http.Request) (*service.CreateBookRequest, bool) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return nil, false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid book data", http.StatusBadRequest)
		return nil, false
	}

	errs := validation.NewFieldErrors()
	title := validation.CheckTitle("title", req.Title, errs)
	validation.CheckPublicationYear(req.PublicationYear, errs)
	validation.CheckISBN(req.ISBN, errs)
	validation.CheckPages(req.Pages, errs)
	validation.CheckFreeText("description", req.Description, errs)
	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return nil, false
	}

	var isbn *string
	if req.ISBN != "" {
		isbn = &req.ISBN
	}

	return &service.CreateBookRequest{
		AuthorID:        req.AuthorID,
		Title:           title,
		ISBN:            isbn,
		PublicationYear: req.PublicationYear,
		Pages:           req.Pages,
		Description:     req.Description,
	}, true
}

// ListBooks supports equality filters on author and publication year, a
// case-insensitive search across title and author name, and a client
// sort key; default order is title ascending.
func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindBook}) {
		return
	}

	limit, offset := h.pagination(r)

	opts := repository.BookListOptions{
		AuthorID: r.URL.Query().Get("author"),
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
		Limit:    limit,
		Offset:   offset,
	}

	if yearParam := r.URL.Query().Get("publication_year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			WriteError(w, "publication_year must be a number", http.StatusBadRequest)
			return
		}
		opts.PublicationYear = &year
	}

	books, err := h.BookRepo.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, books, http.StatusOK)
}

func (h *Handlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermCreate, authz.Resource{Kind: authz.KindBook}) {
		return
	}

	req, ok := h.parseBookRequest(w, r)
	if !ok {
		return
	}

	book, err := h.CatalogService.CreateBook(r.Context(), *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, book, http.StatusCreated)
}

func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindBook}) {
		return
	}

	bookID := mux.Vars(r)["id"]

	book, err := h.BookRepo.GetByID(r.Context(), bookID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, book, http.StatusOK)
}

func (h *Handlers) UpdateBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindBook}) {
		return
	}

	req, ok := h.parseBookRequest(w, r)
	if !ok {
		return
	}

	bookID := mux.Vars(r)["id"]

	book, err := h.CatalogService.UpdateBook(r.Context(), bookID, *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, book, http.StatusOK)
}

func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindBook}) {
		return
	}

	bookID := mux.Vars(r)["id"]

	if err := h.CatalogService.DeleteBook(r.Context(), bookID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
