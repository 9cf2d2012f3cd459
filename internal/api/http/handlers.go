package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"visitdesk-station/internal/cache"
	"visitdesk-station/internal/domain"
	"visitdesk-station/internal/logger"
	"visitdesk-station/internal/service"
)

// CheckInHandler exposes the check-in lifecycle to the kiosk UI.
type CheckInHandler struct {
	svc   service.CheckInService
	cache *cache.ActiveInvitations
	now   func() time.Time
}

func NewCheckInHandler(svc service.CheckInService, invCache *cache.ActiveInvitations) *CheckInHandler {
	return &CheckInHandler{
		svc:   svc,
		cache: invCache,
		now:   time.Now,
	}
}

type scanRequest struct {
	Reference string `json:"reference"`
	Mode      string `json:"mode,omitempty"` // "manual" (default) or "auto"
}

type notesRequest struct {
	Notes string `json:"notes,omitempty"`
}

// HandleScan resolves a scanned QR payload or typed invitation number
// and returns the record with its eligibility verdict. In auto mode the
// check-in is applied immediately when the verdict permits it.
func (h *CheckInHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reference == "" {
		writeJSONError(w, http.StatusBadRequest, "reference is required")
		return
	}

	mode := domain.OperatorModeManual
	if req.Mode == "auto" {
		mode = domain.OperatorModeAuto
	}

	out, err := h.svc.Scan(r.Context(), req.Reference, mode)
	if errors.Is(err, service.ErrDuplicateScan) {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"suppressed": true,
			"message":    "Scan ignored: same code was just processed.",
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCheckIn applies the check-in transition after the operator
// reviewed the verdict and confirmed.
func (h *CheckInHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	var req notesRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rec, err := h.svc.Resolve(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Confirm(r.Context(), rec, req.Notes, domain.OperatorModeManual)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCheckOut applies the check-out transition, closing the visit.
func (h *CheckInHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	var req notesRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rec, err := h.svc.Resolve(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.CheckOut(r.Context(), rec, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleActiveInvitations serves the dashboard list from the local
// cache.
func (h *CheckInHandler) HandleActiveInvitations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"invitations": h.cache.Active(h.now()),
	})
}

// HandleHealth reports the station process is up.
func (h *CheckInHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps the service's typed failures onto HTTP statuses so
// the kiosk can message each kind differently.
func writeError(w http.ResponseWriter, err error) {
	var invalid *service.InvalidRecordError
	var transport *service.TransportError
	var remote *service.RemoteError

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "No invitation matches that reference. Re-scan or re-enter the number.")
	case errors.Is(err, service.ErrNotEligible):
		// Confirm was issued against a blocked verdict; a caller bug.
		logger.Error("Confirm called despite blocked verdict", "error", err)
		writeJSONError(w, http.StatusConflict, "This invitation is not eligible for check-in.")
	case errors.As(err, &remote):
		body := map[string]any{"error": remote.Message}
		if remote.Message == "" {
			body["error"] = "The invitation service rejected the request."
		}
		if remote.Latest != nil {
			body["invitation"] = remote.Latest
		}
		writeJSON(w, http.StatusConflict, body)
	case errors.As(err, &transport):
		writeJSONError(w, http.StatusBadGateway, "Could not reach the invitation service. Please retry.")
	case errors.As(err, &invalid):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("Unhandled error in check-in handler", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
