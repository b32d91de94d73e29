package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xdevs/flashgen/internal/store"
	"github.com/10xdevs/flashgen/internal/testutil"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) CompleteFlashcards(ctx context.Context, inputText string, numberOfCards int) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeCompleter) ModelName() string { return "test-model" }

func TestGenerateSuccess(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: validResponse(5)}
	svc := NewGenerationService(st, llm, testutil.Logger())

	result, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalGenerated)
	assert.Len(t, result.Proposals, 5)
	assert.Equal(t, "test-model", result.AIModel)
	assert.NotEmpty(t, result.GenerationID)

	gen, err := st.GetGeneration(context.Background(), result.GenerationID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, gen.TotalGenerated)
	assert.Nil(t, gen.Error)
	assert.Zero(t, gen.AcceptedFull)
	assert.Zero(t, gen.AcceptedEdited)
}

func TestGenerateRejectsInvalidInputBeforeProviderCall(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: validResponse(5)}
	svc := NewGenerationService(st, llm, testutil.Logger())

	_, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 999), 5)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "input_text")
	assert.Zero(t, llm.calls, "provider must not be called for invalid input")

	// No record is written for a rejected request.
	total, err := st.SumTotalGenerated(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

// A zero card count is out of range, not a request for the default; the
// caller resolves an omitted field to the default before calling Generate.
func TestGenerateRejectsZeroCardCount(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: validResponse(5)}
	svc := NewGenerationService(st, llm, testutil.Logger())

	_, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "number_of_cards")
	assert.Zero(t, llm.calls)
}

func TestGenerateProviderFailureWritesAuditRecord(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{err: errors.New("connection refused")}
	svc := NewGenerationService(st, llm, testutil.Logger())

	_, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 5)
	require.ErrorIs(t, err, ErrGenerationFailed)

	gens := listGenerations(t, st, user.ID)
	require.Len(t, gens, 1)
	assert.Zero(t, gens[0].TotalGenerated)
	require.NotNil(t, gens[0].Error)
	assert.Contains(t, *gens[0].Error, "connection refused")
}

func TestGenerateParseFailureWritesAuditRecord(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: "not json at all"}
	svc := NewGenerationService(st, llm, testutil.Logger())

	_, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 5)
	require.ErrorIs(t, err, ErrGenerationFailed)

	gens := listGenerations(t, st, user.ID)
	require.Len(t, gens, 1)
	assert.Zero(t, gens[0].TotalGenerated)
	assert.NotNil(t, gens[0].Error)
}

func TestGenerateNoRetryOnFailure(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{err: errors.New("boom")}
	svc := NewGenerationService(st, llm, testutil.Logger())

	_, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 5)
	require.Error(t, err)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateUnderDeliveryKept(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: validResponse(3)}
	svc := NewGenerationService(st, llm, testutil.Logger())

	result, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalGenerated)
	assert.Len(t, result.Proposals, 3)
}

// Each call writes its own record; duplicate submissions are not deduplicated.
func TestGenerateNoIdempotency(t *testing.T) {
	st := testutil.NewStore(t)
	user := testutil.CreateUser(t, st)
	llm := &fakeCompleter{response: validResponse(2)}
	svc := NewGenerationService(st, llm, testutil.Logger())

	first, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 2)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), user.ID, strings.Repeat("a", 1000), 2)
	require.NoError(t, err)

	assert.NotEqual(t, first.GenerationID, second.GenerationID)
	assert.Len(t, listGenerations(t, st, user.ID), 2)
}

func listGenerations(t *testing.T, st *store.Store, userID string) []store.Generation {
	t.Helper()
	gens, err := st.ListGenerations(context.Background(), userID)
	require.NoError(t, err)
	return gens
}
