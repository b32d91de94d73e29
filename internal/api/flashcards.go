package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/10xdevs/flashgen/internal/core"
	"github.com/10xdevs/flashgen/internal/store"
)

type createFlashcardRequest struct {
	FrontContent   string `json:"front_content"`
	BackContent    string `json:"back_content"`
	CreationMethod string `json:"creation_method"`
	GenerationID   string `json:"generation_id,omitempty"`
}

type updateFlashcardRequest struct {
	FrontContent string `json:"front_content"`
	BackContent  string `json:"back_content"`
}

type flashcardsResponse struct {
	Flashcards []store.Flashcard `json:"flashcards"`
}

func (h *APIHandler) CreateFlashcardHandler(w http.ResponseWriter, r *http.Request) {
	var req createFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON in request body", nil)
		return
	}

	card, err := h.flashcards.Create(r.Context(), userIDFrom(r), core.CreateFlashcardCommand{
		FrontContent:   req.FrontContent,
		BackContent:    req.BackContent,
		CreationMethod: core.CreationMethod(req.CreationMethod),
		GenerationID:   req.GenerationID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (h *APIHandler) ListFlashcardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.flashcards.List(r.Context(), userIDFrom(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if cards == nil {
		cards = []store.Flashcard{}
	}
	writeJSON(w, http.StatusOK, flashcardsResponse{Flashcards: cards})
}

func (h *APIHandler) GetFlashcardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.flashcards.Get(r.Context(), chi.URLParam(r, "flashcardID"), userIDFrom(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *APIHandler) UpdateFlashcardHandler(w http.ResponseWriter, r *http.Request) {
	var req updateFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON in request body", nil)
		return
	}

	card, err := h.flashcards.Update(r.Context(), chi.URLParam(r, "flashcardID"), userIDFrom(r), core.UpdateFlashcardCommand{
		FrontContent: req.FrontContent,
		BackContent:  req.BackContent,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *APIHandler) DeleteFlashcardHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.flashcards.Delete(r.Context(), chi.URLParam(r, "flashcardID"), userIDFrom(r)); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
