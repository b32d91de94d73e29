package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xdevs/flashgen/internal/store"
	"github.com/10xdevs/flashgen/internal/testutil"
)

func TestCreateManualFlashcard(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	svc := NewFlashcardService(st, testutil.Logger())

	card, err := svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
		FrontContent:   "What is Go?",
		BackContent:    "A programming language.",
		CreationMethod: CreationManual,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "manual", card.CreationMethod)
	assert.Nil(t, card.GenerationID)
}

func TestCreateFlashcardValidation(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	svc := NewFlashcardService(st, testutil.Logger())

	tests := []struct {
		name      string
		cmd       CreateFlashcardCommand
		wantField string
	}{
		{
			"front too short",
			CreateFlashcardCommand{FrontContent: "a", BackContent: "valid back", CreationMethod: CreationManual},
			"front_content",
		},
		{
			"unknown method",
			CreateFlashcardCommand{FrontContent: "front", BackContent: "back", CreationMethod: "ai_magic"},
			"creation_method",
		},
		{
			"manual with generation id",
			CreateFlashcardCommand{FrontContent: "front", BackContent: "back", CreationMethod: CreationManual, GenerationID: "c4a760a8-dbcf-4e14-9f39-645a8e5cda11"},
			"generation_id",
		},
		{
			"ai without generation id",
			CreateFlashcardCommand{FrontContent: "front", BackContent: "back", CreationMethod: CreationAIFull},
			"generation_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user.ID, tt.cmd)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.wantField)
		})
	}
}

func TestAcceptedFlashcardIncrementsCounters(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	gen := testutil.CreateGeneration(t, st, user.ID, 2)
	svc := NewFlashcardService(st, testutil.Logger())

	_, err := svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
		FrontContent:   "Q full?",
		BackContent:    "A full.",
		CreationMethod: CreationAIFull,
		GenerationID:   gen.ID,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
		FrontContent:   "Q edited?",
		BackContent:    "A edited.",
		CreationMethod: CreationAIEdited,
		GenerationID:   gen.ID,
	})
	require.NoError(t, err)

	updated, err := st.GetGeneration(context.Background(), gen.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AcceptedFull)
	assert.Equal(t, 1, updated.AcceptedEdited)
}

func TestAcceptanceCeilingEnforced(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	gen := testutil.CreateGeneration(t, st, user.ID, 5)
	svc := NewFlashcardService(st, testutil.Logger())

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
			FrontContent:   "Question?",
			BackContent:    "Answer.",
			CreationMethod: CreationAIFull,
			GenerationID:   gen.ID,
		})
		require.NoError(t, err, "accept %d should succeed", i+1)
	}

	// The sixth accept hits the ceiling and must not move any counter.
	_, err := svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
		FrontContent:   "Question?",
		BackContent:    "Answer.",
		CreationMethod: CreationAIEdited,
		GenerationID:   gen.ID,
	})
	require.ErrorIs(t, err, store.ErrAcceptanceLimit)

	updated, err := st.GetGeneration(context.Background(), gen.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.AcceptedFull)
	assert.Equal(t, 0, updated.AcceptedEdited)

	cards, err := svc.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, cards, 5)
}

func TestAcceptAgainstForeignGeneration(t *testing.T) {
	st := testutil.NewStore(t)
	owner := testutil.CreateUser(t, st)
	other := testutil.CreateUser(t, st)
	gen := testutil.CreateGeneration(t, st, owner.ID, 5)
	svc := NewFlashcardService(st, testutil.Logger())

	_, err := svc.Create(context.Background(), other.ID, CreateFlashcardCommand{
		FrontContent:   "Question?",
		BackContent:    "Answer.",
		CreationMethod: CreationAIFull,
		GenerationID:   gen.ID,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateFlashcard(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	svc := NewFlashcardService(st, testutil.Logger())

	card, err := svc.Create(context.Background(), user.ID, CreateFlashcardCommand{
		FrontContent:   "Old front",
		BackContent:    "Old back",
		CreationMethod: CreationManual,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), card.ID, user.ID, UpdateFlashcardCommand{
		FrontContent: "New front",
		BackContent:  "New back",
	})
	require.NoError(t, err)
	assert.Equal(t, "New front", updated.FrontContent)
	assert.Equal(t, "manual", updated.CreationMethod)

	_, err = svc.Update(context.Background(), card.ID, user.ID, UpdateFlashcardCommand{
		FrontContent: "x",
		BackContent:  "New back",
	})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateAndDeleteScopedToOwner(t *testing.T) {
	st := testutil.NewStore(t)
	owner := testutil.CreateUser(t, st)
	other := testutil.CreateUser(t, st)
	svc := NewFlashcardService(st, testutil.Logger())

	card, err := svc.Create(context.Background(), owner.ID, CreateFlashcardCommand{
		FrontContent:   "Private front",
		BackContent:    "Private back",
		CreationMethod: CreationManual,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), card.ID, other.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Update(context.Background(), card.ID, other.ID, UpdateFlashcardCommand{
		FrontContent: "Hijacked",
		BackContent:  "Hijacked",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(context.Background(), card.ID, other.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Still intact for the owner.
	got, err := svc.Get(context.Background(), card.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private front", got.FrontContent)

	require.NoError(t, svc.Delete(context.Background(), card.ID, owner.ID))
	err = svc.Delete(context.Background(), card.ID, owner.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
