package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/realtime"
)

func reload(t *testing.T, e *env, n *types.Note) *types.Note {
	t.Helper()
	var got types.Note
	require.NoError(t, e.db.First(&got, "id = ?", n.ID).Error)
	return &got
}

func TestCreateNoteEmbedsAndEmits(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")

	n, err := e.noteSvc.Create(e.ctx, owner.ID, CreateNoteInput{
		Title:   "Go",
		Content: "# Channels\n\nUse **channels** to communicate.",
		Tags:    []string{"go", "go", " concurrency "},
	})
	require.NoError(t, err)
	assert.Len(t, n.Tags, 2)

	stored := reload(t, e, n)
	require.NotNil(t, stored.Embedding)
	assert.Len(t, stored.Embedding.Slice(), types.EmbeddingDim)
	calls := e.embedder.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "Use channels to communicate.")
	assert.NotContains(t, calls[0], "**")
	assert.Equal(t, []realtime.EventType{realtime.EventNoteCreated}, e.events.emitted())
}

func TestCreateNoteSurvivesEmbedderFailure(t *testing.T) {
	e := newEnv(t)
	e.embedder.Err = apperrors.New(apperrors.KindProviderUnavailable, "embed", "down")
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")

	n, err := e.noteSvc.Create(e.ctx, owner.ID, CreateNoteInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Nil(t, reload(t, e, n).Embedding)
}

func TestCreateNoteValidation(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")

	_, err := e.noteSvc.Create(e.ctx, owner.ID, CreateNoteInput{Title: " ", Content: "C"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
	_, err = e.noteSvc.Create(e.ctx, owner.ID, CreateNoteInput{Title: "T", Content: ""})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
}

func TestListNotesPaginates(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")
	for _, title := range []string{"a", "b", "c"} {
		testutil.SeedNote(t, e.ctx, e.db, owner.ID, title, "body", nil)
	}

	page, err := e.noteSvc.List(e.ctx, owner.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.Len(t, page.Notes, 3)

	page, err = e.noteSvc.List(e.ctx, owner.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Notes, 1)

	_, err = e.noteSvc.List(e.ctx, owner.ID, -1, 10)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
	_, err = e.noteSvc.List(e.ctx, owner.ID, 1, MaxPageLimit+1)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
}

func TestUpdateNoteReembedsOrClears(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")
	n, err := e.noteSvc.Create(e.ctx, owner.ID, CreateNoteInput{Title: "T", Content: "old"})
	require.NoError(t, err)

	content := "new content"
	_, err = e.noteSvc.Update(e.ctx, owner.ID, n.ID, UpdateNoteInput{Content: &content})
	require.NoError(t, err)
	assert.NotNil(t, reload(t, e, n).Embedding)
	calls := len(e.embedder.Calls())

	pinned := true
	_, err = e.noteSvc.Update(e.ctx, owner.ID, n.ID, UpdateNoteInput{IsPinned: &pinned})
	require.NoError(t, err)
	assert.Len(t, e.embedder.Calls(), calls, "pin-only update does not re-embed")

	e.embedder.Err = errors.New("down")
	content = "newer content"
	_, err = e.noteSvc.Update(e.ctx, owner.ID, n.ID, UpdateNoteInput{Content: &content})
	require.NoError(t, err)
	assert.Nil(t, reload(t, e, n).Embedding)
}

func TestNoteOwnership(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "owner@example.com")
	other := testutil.SeedUser(t, e.ctx, e.db, "other@example.com")
	n := testutil.SeedNote(t, e.ctx, e.db, owner.ID, "mine", "body", nil)

	_, err := e.noteSvc.Get(e.ctx, other.ID, n.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.True(t, errors.Is(e.noteSvc.Delete(e.ctx, other.ID, n.ID), apperrors.ErrNotFound))

	require.NoError(t, e.noteSvc.Delete(e.ctx, owner.ID, n.ID))
	_, err = e.noteSvc.Get(e.ctx, owner.ID, n.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestReindexEmbedsMissing(t *testing.T) {
	e := newEnv(t)
	owner := testutil.SeedUser(t, e.ctx, e.db, "notes@example.com")
	for _, title := range []string{"a", "b", "c"} {
		testutil.SeedNote(t, e.ctx, e.db, owner.ID, title, "body "+title, nil)
	}

	report, err := e.noteSvc.Reindex(e.ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, ReindexReport{Scanned: 3, Embedded: 3}, report)

	report, err = e.noteSvc.Reindex(e.ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
}
