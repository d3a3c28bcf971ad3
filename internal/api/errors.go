package api

import (
	"encoding/json"
	"net/http"
	"time"

	"shareit/internal/domain"
)

type ErrorResponse struct {
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}

// writeDomainError maps the error kind onto an HTTP status. Unknown kinds
// are internal errors and keep their details out of the response.
func writeDomainError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case domain.KindAuthorization:
		writeError(w, http.StatusForbidden, err.Error())
	case domain.KindValidation, domain.KindUnavailableItem:
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.KindConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
