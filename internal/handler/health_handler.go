package handlers

import (
	"net/http"

	"bookhub/internal/database"
)

type TablesResponse struct {
	Tables int `json:"tables"`
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "bookhub API"}, http.StatusOK)
}

// HealthHandler reports whether the database connection is alive.
func HealthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			WriteError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		WriteSuccess(w, MessageResponse{Message: "ok"}, http.StatusOK)
	}
}

func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTablesDB()
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, TablesResponse{Tables: count}, http.StatusOK)
}
