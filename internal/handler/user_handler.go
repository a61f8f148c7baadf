package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
	"bookhub/internal/service"
	"bookhub/internal/validation"
)

type UpdateProfileRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Bio         string `json:"bio"`
	DateOfBirth string `json:"dateOfBirth"`
	Role        string `json:"role"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindUser}) {
		return
	}

	limit, offset := h.pagination(r)

	users, err := h.UserRepo.ListUsers(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindUser}) {
		return
	}

	userID := mux.Vars(r)["id"]

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	// a user account is owned by itself; admins override
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindUser, OwnerID: userID}) {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid profile data", http.StatusBadRequest)
		return
	}

	errs := validation.NewFieldErrors()
	validation.CheckEmail("email", req.Email, errs)
	validation.CheckFreeText("bio", req.Bio, errs)

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			errs.Add("dateOfBirth", "must be a date in YYYY-MM-DD format")
		} else {
			dateOfBirth = &parsed
		}
	}

	role := ""
	if req.Role != "" {
		if principal(r).Role != authz.RoleAdmin {
			WriteError(w, "forbidden: only admins may change roles", http.StatusForbidden)
			return
		}
		if !authz.ValidRole(req.Role) {
			errs.Add("role", "must be Viewer, Editor or Admin")
		}
		role = req.Role
	}

	if !errs.Empty() {
		WriteFieldErrors(w, errs)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), service.UpdateProfileRequest{
		UserID:      userID,
		Email:       req.Email,
		Bio:         req.Bio,
		DateOfBirth: dateOfBirth,
		Role:        role,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if !authorize(w, r, authz.PermDelete, authz.Resource{Kind: authz.KindUser, OwnerID: userID}) {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	followeeID := mux.Vars(r)["id"]

	if err := h.UserService.FollowUser(r.Context(), p.UserID, followeeID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "now following"}, http.StatusCreated)
}

func (h *Handlers) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	followeeID := mux.Vars(r)["id"]

	if err := h.UserService.UnfollowUser(r.Context(), p.UserID, followeeID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListFollowing(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindUser}) {
		return
	}

	userID := mux.Vars(r)["id"]

	users, err := h.FollowRepo.Following(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) ListFollowers(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindUser}) {
		return
	}

	userID := mux.Vars(r)["id"]

	users, err := h.FollowRepo.Followers(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "file too large or malformed upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedAvatarTypes[contentType] {
		WriteError(w, "unsupported file type, allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	avatarURL, err := h.UserService.UploadAvatar(r.Context(), p.UserID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"avatarUrl": avatarURL}, http.StatusCreated)
}
