package core

import (
	"context"

	"github.com/10xdevs/flashgen/internal/store"
)

type StatsService struct {
	store *store.Store
}

func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*Stats, error) {
	manual, err := s.store.CountFlashcardsByMethod(ctx, userID, string(CreationManual))
	if err != nil {
		return nil, err
	}
	aiFull, err := s.store.CountFlashcardsByMethod(ctx, userID, string(CreationAIFull))
	if err != nil {
		return nil, err
	}
	aiEdited, err := s.store.CountFlashcardsByMethod(ctx, userID, string(CreationAIEdited))
	if err != nil {
		return nil, err
	}
	totalGenerated, err := s.store.SumTotalGenerated(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		ManualCount:    manual,
		AIFullCount:    aiFull,
		AIEditedCount:  aiEdited,
		TotalGenerated: totalGenerated,
	}, nil
}
