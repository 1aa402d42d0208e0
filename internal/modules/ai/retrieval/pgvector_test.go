package retrieval

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
)

func TestPGVectorRetrieverIsolatesOwnersOrdersAndTruncates(t *testing.T) {
	db := testutil.PostgresDB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	suffix := uuid.NewString()
	alice := testutil.SeedUser(t, ctx, tx, "alice-"+suffix+"@example.com")
	bob := testutil.SeedUser(t, ctx, tx, "bob-"+suffix+"@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, "stranger-"+suffix+"@example.com")

	query := testutil.UnitVector(0)
	near := testutil.SeedNote(t, ctx, tx, alice.ID, "near", "n", testutil.UnitVector(0))
	mid := testutil.SeedNote(t, ctx, tx, alice.ID, "mid", "m", testutil.UnitVector(0, 1))
	tieA := testutil.SeedNote(t, ctx, tx, alice.ID, "tie a", "t", testutil.UnitVector(0, 1, 2))
	tieB := testutil.SeedNote(t, ctx, tx, alice.ID, "tie b", "t", testutil.UnitVector(0, 1, 2))
	far := testutil.SeedNote(t, ctx, tx, alice.ID, "far", "f", testutil.UnitVector(5))
	testutil.SeedNote(t, ctx, tx, alice.ID, "unembedded", "u", nil)
	bobs := testutil.SeedNote(t, ctx, tx, bob.ID, "bob exact", "b", testutil.UnitVector(0))

	ties := []uuid.UUID{tieA.ID, tieB.ID}
	sort.Slice(ties, func(i, j int) bool { return ties[i].String() < ties[j].String() })

	r := NewPGVectorRetriever(tx, 3, log)

	got, err := r.Retrieve(ctx, query, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 5)
	ids := make([]uuid.UUID, len(got))
	for i, h := range got {
		ids[i] = h.NoteID
		assert.NotEqual(t, bobs.ID, h.NoteID)
	}
	assert.Equal(t, []uuid.UUID{near.ID, mid.ID, ties[0], ties[1], far.ID}, ids)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
	}
	assert.InDelta(t, 0, got[0].Distance, 1e-6)
	assert.InDelta(t, 1, got[4].Distance, 1e-6)
	assert.Equal(t, "near", got[0].Title)

	top, err := r.Retrieve(ctx, query, alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, near.ID, top[0].NoteID)

	def, err := r.Retrieve(ctx, query, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, def, 3)
	assert.Equal(t, ties[0], def[2].NoteID)

	bobGot, err := r.Retrieve(ctx, testutil.UnitVector(5), bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, bobGot, 1)
	assert.Equal(t, bobs.ID, bobGot[0].NoteID)

	none, err := r.Retrieve(ctx, query, stranger.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}
