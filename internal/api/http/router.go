package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"visitdesk-station/internal/security"
)

// NewRouter wires the station routes. Health is open; everything else
// requires an operator token.
func NewRouter(h *CheckInHandler, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)

	r.HandleFunc("/api/health", h.HandleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tm))
	api.HandleFunc("/scan", h.HandleScan).Methods(http.MethodPost)
	api.HandleFunc("/invitations/active", h.HandleActiveInvitations).Methods(http.MethodGet)
	api.HandleFunc("/invitations/{number}/check-in", h.HandleCheckIn).Methods(http.MethodPost)
	api.HandleFunc("/invitations/{number}/check-out", h.HandleCheckOut).Methods(http.MethodPost)

	return r
}
