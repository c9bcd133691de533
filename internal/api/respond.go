package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MARELLASUSANNA/TravelViz/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *APIServer) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeError maps service errors onto HTTP statuses. Anything unrecognized is
// an internal error and gets logged.
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		s.writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		s.writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrForbidden):
		s.writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrOutOfRange),
		errors.Is(err, service.ErrValidation):
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("Internal error", "error", err)
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
