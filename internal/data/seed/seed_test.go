package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brainsync-backend/internal/domain"
)

func TestDefaultDataset(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Len(t, d.Users, 3)
	assert.Len(t, d.Tags, 8)
	assert.Len(t, d.Notes, 6)
	require.Len(t, d.Quizzes, 2)
	for _, q := range d.Quizzes {
		for _, qq := range q.Questions {
			assert.Contains(t, qq.Options, qq.Answer, qq.Text)
		}
	}
}

func TestRunLoadsDataset(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	stale := testutil.SeedUser(t, ctx, db, "stale@example.com")

	d, err := Default()
	require.NoError(t, err)
	report, err := Run(ctx, db, log, d, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, Report{Users: 3, Tags: 8, Notes: 6, Quizzes: 2}, report)

	var count int64
	require.NoError(t, db.Model(&types.User{}).Where("id = ?", stale.ID).Count(&count).Error)
	assert.Zero(t, count, "existing rows are wiped")

	var alice types.User
	require.NoError(t, db.Where("email = ?", "user@gmail.com").First(&alice).Error)
	assert.Equal(t, "Alice Johnson", alice.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("password123")))

	var pinned types.Note
	require.NoError(t, db.Preload("Tags").Where("user_id = ? AND is_pinned = ?", alice.ID, true).First(&pinned).Error)
	assert.Equal(t, "Introduction to Artificial Intelligence", pinned.Title)
	require.NotNil(t, pinned.AISummary)
	assert.Nil(t, pinned.Embedding)
	assert.Len(t, pinned.Tags, 2)

	var quiz types.Quiz
	require.NoError(t, db.Preload("Questions").Where("title = ?", "AI Fundamentals Quiz").First(&quiz).Error)
	assert.Equal(t, alice.ID, quiz.UserID)
	assert.Equal(t, 3, quiz.Total)
	assert.Len(t, quiz.Questions, 3)
	assert.Nil(t, quiz.Score)
}

func TestRunIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	d, err := Default()
	require.NoError(t, err)

	_, err = Run(ctx, db, testutil.Logger(t), d, bcrypt.MinCost)
	require.NoError(t, err)
	_, err = Run(ctx, db, testutil.Logger(t), d, bcrypt.MinCost)
	require.NoError(t, err)

	var notes int64
	require.NoError(t, db.Model(&types.Note{}).Count(&notes).Error)
	assert.Equal(t, int64(6), notes)
}

func TestRunRejectsUnknownOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	d := Dataset{
		Password: "password123",
		Users:    []User{{Email: "a@example.com", Name: "A"}},
		Notes:    []Note{{Owner: "ghost@example.com", Title: "t", Content: "c"}},
	}
	_, err := Run(ctx, db, testutil.Logger(t), d, bcrypt.MinCost)
	require.Error(t, err)

	var users int64
	require.NoError(t, db.Model(&types.User{}).Count(&users).Error)
	assert.Zero(t, users, "transaction rolls back")
}
