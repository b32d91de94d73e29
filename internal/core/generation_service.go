package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/10xdevs/flashgen/internal/store"
)

// Completer is the single provider call the orchestrator depends on. The
// production implementation is LLMService; tests substitute a fake.
type Completer interface {
	CompleteFlashcards(ctx context.Context, inputText string, numberOfCards int) (string, error)
	ModelName() string
}

type GenerationService struct {
	store *store.Store
	llm   Completer
	log   *zap.SugaredLogger
}

func NewGenerationService(st *store.Store, llm Completer, log *zap.SugaredLogger) *GenerationService {
	return &GenerationService{
		store: st,
		llm:   llm,
		log:   log,
	}
}

// Generate runs one provider call for the user and persists a generation
// record for it, success or failure. The card count must already be resolved
// by the caller; an out-of-range value, zero included, is rejected here.
// Invalid input is rejected before the provider is contacted and leaves no
// record. There is no retry and no deduplication: every call produces a
// fresh record.
func (s *GenerationService) Generate(ctx context.Context, userID, inputText string, numberOfCards int) (*GenerationResult, error) {
	if vErr := ValidateGenerationInput(inputText, numberOfCards); vErr != nil {
		return nil, vErr
	}

	start := time.Now()

	raw, err := s.llm.CompleteFlashcards(ctx, inputText, numberOfCards)
	if err != nil {
		return nil, s.recordFailure(ctx, userID, start, err)
	}

	proposals, err := ParseProposals(raw, numberOfCards)
	if err != nil {
		return nil, s.recordFailure(ctx, userID, start, err)
	}

	elapsed := time.Since(start).Milliseconds()
	gen := store.Generation{
		UserID:           userID,
		TotalGenerated:   len(proposals),
		GenerationTimeMs: elapsed,
		AIModel:          s.llm.ModelName(),
	}
	if err := s.store.CreateGeneration(ctx, &gen); err != nil {
		s.log.Errorw("failed to persist generation record", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to persist generation record: %w", err)
	}

	s.log.Infow("generation succeeded",
		"user_id", userID,
		"generation_id", gen.ID,
		"total_generated", len(proposals),
		"generation_time_ms", elapsed,
	)

	return &GenerationResult{
		GenerationID:     gen.ID,
		Proposals:        proposals,
		AIModel:          gen.AIModel,
		GenerationTimeMs: elapsed,
		TotalGenerated:   len(proposals),
	}, nil
}

// recordFailure writes the audit record for a failed attempt so the failure
// is never silently dropped, then returns the error handed to the caller.
func (s *GenerationService) recordFailure(ctx context.Context, userID string, start time.Time, cause error) error {
	elapsed := time.Since(start).Milliseconds()
	msg := cause.Error()
	gen := store.Generation{
		UserID:           userID,
		TotalGenerated:   0,
		GenerationTimeMs: elapsed,
		AIModel:          s.llm.ModelName(),
		Error:            &msg,
	}
	if err := s.store.CreateGeneration(ctx, &gen); err != nil {
		s.log.Errorw("failed to persist failure record", "user_id", userID, "error", err)
	}

	s.log.Errorw("generation failed",
		"user_id", userID,
		"generation_id", gen.ID,
		"generation_time_ms", elapsed,
		"error", cause,
	)
	return fmt.Errorf("%w: %v", ErrGenerationFailed, cause)
}
