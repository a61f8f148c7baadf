package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"bookhub/internal/authz"
)

// ListNotifications returns the caller's own notifications, newest first.
// Pass ?unread=true to see only the unread ones.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !authorize(w, r, authz.PermView, authz.Resource{Kind: authz.KindNotification, OwnerID: p.UserID}) {
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, offset := h.pagination(r)

	notifications, err := h.NotificationService.List(r.Context(), p.UserID, unreadOnly, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, notifications, http.StatusOK)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if !authorize(w, r, authz.PermEdit, authz.Resource{Kind: authz.KindNotification, OwnerID: p.UserID}) {
		return
	}

	notificationID := mux.Vars(r)["id"]

	if err := h.NotificationService.MarkRead(r.Context(), notificationID, p.UserID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "notification marked as read"}, http.StatusOK)
}
