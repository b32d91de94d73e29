package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/10xdevs/flashgen/internal/store"
)

type FlashcardService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewFlashcardService(st *store.Store, log *zap.SugaredLogger) *FlashcardService {
	return &FlashcardService{store: st, log: log}
}

// Create persists a new flashcard. Manual cards must not reference a
// generation; accepted AI cards must, and their insert is guarded by the
// acceptance ceiling of the referenced generation.
func (s *FlashcardService) Create(ctx context.Context, userID string, cmd CreateFlashcardCommand) (*store.Flashcard, error) {
	if vErr := s.validateCommand(cmd); vErr != nil {
		return nil, vErr
	}

	card := store.Flashcard{
		UserID:         userID,
		FrontContent:   cmd.FrontContent,
		BackContent:    cmd.BackContent,
		CreationMethod: string(cmd.CreationMethod),
	}

	if cmd.CreationMethod == CreationManual {
		if err := s.store.CreateFlashcard(ctx, &card); err != nil {
			return nil, err
		}
	} else {
		genID := cmd.GenerationID
		card.GenerationID = &genID
		if err := s.store.CreateAcceptedFlashcard(ctx, &card); err != nil {
			return nil, err
		}
	}

	s.log.Infow("flashcard created",
		"user_id", userID,
		"flashcard_id", card.ID,
		"creation_method", card.CreationMethod,
	)
	return &card, nil
}

func (s *FlashcardService) validateCommand(cmd CreateFlashcardCommand) *ValidationError {
	fields := ValidateProposalContent(cmd.FrontContent, cmd.BackContent)
	if fields == nil {
		fields = make(map[string]string)
	}

	switch {
	case !cmd.CreationMethod.Valid():
		fields["creation_method"] = "must be one of manual, ai_full, ai_edited"
	case cmd.CreationMethod == CreationManual:
		if cmd.GenerationID != "" {
			fields["generation_id"] = "must not be set for manual flashcards"
		}
	default:
		if _, err := uuid.Parse(cmd.GenerationID); err != nil {
			fields["generation_id"] = "must be a valid generation id"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (s *FlashcardService) List(ctx context.Context, userID string) ([]store.Flashcard, error) {
	return s.store.ListFlashcards(ctx, userID)
}

func (s *FlashcardService) Get(ctx context.Context, id, userID string) (*store.Flashcard, error) {
	return s.store.GetFlashcard(ctx, id, userID)
}

// Update replaces the content of an owned flashcard. The creation method and
// generation reference are immutable after creation.
func (s *FlashcardService) Update(ctx context.Context, id, userID string, cmd UpdateFlashcardCommand) (*store.Flashcard, error) {
	if fields := ValidateProposalContent(cmd.FrontContent, cmd.BackContent); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	return s.store.UpdateFlashcard(ctx, id, userID, cmd.FrontContent, cmd.BackContent)
}

func (s *FlashcardService) Delete(ctx context.Context, id, userID string) error {
	return s.store.DeleteFlashcard(ctx, id, userID)
}
