package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type updateProposalRequest struct {
	FrontContent *string `json:"front_content"`
	BackContent  *string `json:"back_content"`
}

func (h *APIHandler) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.reviews.Snapshot(userIDFrom(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *APIHandler) UpdateProposalHandler(w http.ResponseWriter, r *http.Request) {
	var req updateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON in request body", nil)
		return
	}

	proposal, err := h.reviews.Update(userIDFrom(r), chi.URLParam(r, "proposalID"), req.FrontContent, req.BackContent)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

func (h *APIHandler) AcceptProposalHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.reviews.Accept(r.Context(), userIDFrom(r), chi.URLParam(r, "proposalID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *APIHandler) RejectProposalHandler(w http.ResponseWriter, r *http.Request) {
	h.reviews.Reject(userIDFrom(r), chi.URLParam(r, "proposalID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ResetReviewHandler(w http.ResponseWriter, r *http.Request) {
	h.reviews.Reset(userIDFrom(r))
	w.WriteHeader(http.StatusNoContent)
}
