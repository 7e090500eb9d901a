package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/logger"
	"coursefund-backend/internal/security"
	"coursefund-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps the error taxonomy onto HTTP statuses. Validation
// and overfunding failures are caller rejections; a stale or racing
// mutation surfaces as not-found.
func respondError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	var oerr *domain.OverfundingError
	if errors.As(err, &oerr) {
		respondJSON(w, http.StatusConflict, errorResponse{Error: oerr.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFoundOrAlreadyProcessed), errors.Is(err, sql.ErrNoRows):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("Internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
