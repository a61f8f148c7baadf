package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type LibraryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"max=20"`
	Email   string `json:"email"`
}

func (h *Handlers) parseLibraryRequest(w http.ResponseWriter, r *http.Request) (*service.CreateLibraryRequest, bool) {
	var req LibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return nil, false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid library data", http.StatusBadRequest)
		return nil, false
	}

	errs := validation.NewFieldErrors()
	name := validation.CheckTitle("name", req.Name, errs)
	validation.CheckFreeText("address", req.Address, errs)
	if req.Email != "" {
		validation.CheckEmail("email", req.Email, errs)
	}
	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return nil, false
	}

	return &service.CreateLibraryRequest{
		Name:    name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}, true
}

func (h *Handlers) ListLibraries(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	limit, offset := h.pagination(r)

	libraries, err := h.LibraryRepo.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, libraries, http.StatusOK)
}

func (h *Handlers) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermCreate, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	req, ok := h.parseLibraryRequest(w, r)
	if !ok {
		return
	}

	library, err := h.CatalogService.CreateLibrary(r.Context(), *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, library, http.StatusCreated)
}

func (h *Handlers) GetLibrary(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	libraryID := mux.Vars(r)["id"]

	library, err := h.CatalogService.GetLibraryDetail(r.Context(), libraryID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, library, http.StatusOK)
}

func (h *Handlers) UpdateLibrary(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	req, ok := h.parseLibraryRequest(w, r)
	if !ok {
		return
	}

	libraryID := mux.Vars(r)["id"]

	library, err := h.CatalogService.UpdateLibrary(r.Context(), libraryID, *req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, library, http.StatusOK)
}

func (h *Handlers) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	libraryID := mux.Vars(r)["id"]

	if err := h.CatalogService.DeleteLibrary(r.Context(), libraryID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ShelveBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	vars := mux.Vars(r)

	created, err := h.CatalogService.ShelveBook(r.Context(), vars["id"], vars["bookId"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if !created {
		WriteError(w, "book already in this library", http.StatusConflict)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "book added to library"}, http.StatusCreated)
}

func (h *Handlers) UnshelveBook(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	vars := mux.Vars(r)

	if err := h.CatalogService.UnshelveBook(r.Context(), vars["id"], vars["bookId"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AssignLibrarianRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// AssignLibrarian sets or replaces the library's single librarian.
func (h *Handlers) AssignLibrarian(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindLibrary}) {
		return
	}

	var req AssignLibrarianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid librarian data", http.StatusBadRequest)
		return
	}

	libraryID := mux.Vars(r)["id"]

	librarian, err := h.CatalogService.AssignLibrarian(r.Context(), service.AssignLibrarianRequest{
		LibraryID: libraryID,
		Name:      req.Name,
		Email:     req.Email,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, librarian, http.StatusOK)
}
