package api

import (
	"encoding/json"
	"net/http"

	"github.com/10xdevs/flashgen/internal/core"
)

type generateRequest struct {
	InputText     string `json:"input_text"`
	NumberOfCards *int   `json:"number_of_cards"`
}

// GenerateHandler runs one generation for the authenticated user and seeds
// their review session with the resulting proposals.
func (h *APIHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON in request body", nil)
		return
	}

	// The default applies only when the field is absent; an explicit 0 is
	// out of range and fails validation.
	numberOfCards := core.DefaultCardCount
	if req.NumberOfCards != nil {
		numberOfCards = *req.NumberOfCards
	}

	result, err := h.generations.Generate(r.Context(), userID, req.InputText, numberOfCards)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.reviews.Initialize(userID, result.GenerationID, result.Proposals)

	writeJSON(w, http.StatusOK, result)
}
