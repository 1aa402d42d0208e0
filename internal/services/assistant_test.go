package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/aitest"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/prompts"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

func TestAskWithoutNotesSkipsGeneration(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "ask@example.com")

	got, err := e.assistant.Ask(e.ctx, owner.ID, "what is a goroutine?")
	require.NoError(t, err)
	assert.Equal(t, prompts.NoRelevantNotesAnswer, got.Text)
	assert.Zero(t, e.primary.CallCount())
	assert.Zero(t, e.secondary.CallCount())
}

func TestAskGroundsOnOwnNotesOnly(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "ask@example.com")
	other := testutil.SeedUser(t, e.ctx, e.db, "other@example.com")
	dim := types.EmbeddingDim
	testutil.SeedNote(t, e.ctx, e.db, owner.ID, "Goroutines", "goroutines are cheap threads",
		aitest.WordVector("goroutines are cheap threads", dim))
	testutil.SeedNote(t, e.ctx, e.db, other.ID, "Secret", "goroutines secret plan",
		aitest.WordVector("goroutines secret plan", dim))

	got, err := e.assistant.Ask(e.ctx, owner.ID, "goroutines")
	require.NoError(t, err)
	assert.Equal(t, "primary answer", got.Text)
	assert.Equal(t, "openai", got.Provider)
	require.Len(t, got.Sources, 1)

	calls := e.primary.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Title: Goroutines\nContent: goroutines are cheap threads")
	assert.NotContains(t, calls[0].Prompt, "secret plan")
	assert.False(t, calls[0].Structured)
}

func TestAskFallsBackAndReportsUnavailable(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "ask@example.com")
	testutil.SeedNote(t, e.ctx, e.db, owner.ID, "Sky", "The sky is blue.",
		aitest.WordVector("The sky is blue.", types.EmbeddingDim))

	e.primary = aitest.Failing("openai", "quota exceeded")
	e.rebuild()
	got, err := e.assistant.Ask(e.ctx, owner.ID, "what colour is the sky?")
	require.NoError(t, err)
	assert.Equal(t, "gemini", got.Provider)

	e.secondary = aitest.Failing("gemini", "timeout")
	e.rebuild()
	_, err = e.assistant.Ask(e.ctx, owner.ID, "what colour is the sky?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "gemini")
}

func TestAskBlankQuestion(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "ask@example.com")
	_, err := e.assistant.Ask(e.ctx, owner.ID, "   ")
	assert.True(t, errors.Is(err, apperrors.ErrEmptyInput))
	assert.Empty(t, e.embedder.Calls())
}

func TestSummarizeStoresSummary(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "sum@example.com")
	other := testutil.SeedUser(t, e.ctx, e.db, "other@example.com")
	n := testutil.SeedNote(t, e.ctx, e.db, owner.ID, "Sky", "The sky is blue.", nil)

	got, err := e.assistant.Summarize(e.ctx, owner.ID, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AISummary)
	assert.Equal(t, "primary answer", *got.AISummary)
	assert.Equal(t, "primary answer", *reload(t, e, n).AISummary)

	_, err = e.assistant.Summarize(e.ctx, other.ID, n.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
