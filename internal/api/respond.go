package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/10xdevs/flashgen/internal/core"
	"github.com/10xdevs/flashgen/internal/review"
	"github.com/10xdevs/flashgen/internal/store"
)

type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, map[string]errorBody{
		"error": {Message: message, Code: code, Details: details},
	})
}

// writeServiceError maps the error taxonomy to HTTP statuses. Provider and
// database detail stays in the logs; clients get a generic message.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", vErr.Fields)
	case errors.Is(err, store.ErrAcceptanceLimit):
		writeError(w, http.StatusBadRequest, "ACCEPTANCE_LIMIT_EXCEEDED", "Cannot accept more flashcards than generated", nil)
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrNoSession),
		errors.Is(err, review.ErrProposalNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	case errors.Is(err, core.ErrGenerationFailed):
		writeError(w, http.StatusServiceUnavailable, "GENERATION_FAILED", "The generation service is currently unavailable", nil)
	default:
		h.log.Errorw("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
