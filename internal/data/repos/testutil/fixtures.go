package testutil

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	types "github.com/yungbote/brainsync-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedNote inserts a note; a nil embedding leaves the column NULL.
func SeedNote(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title, content string, embedding []float32) *types.Note {
	tb.Helper()
	n := &types.Note{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if embedding != nil {
		v := pgvector.NewVector(embedding)
		n.Embedding = &v
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return n
}

// SeedQuiz inserts a quiz whose questions have the given correct answers, each with
// options {answer, "other"}.
func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string, answers ...string) *types.Quiz {
	tb.Helper()
	q := &types.Quiz{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Total:  len(answers),
	}
	for i, a := range answers {
		q.Questions = append(q.Questions, types.Question{
			ID:            uuid.New(),
			Position:      i,
			QuestionText:  "question " + a,
			Options:       []string{a, "other"},
			CorrectAnswer: a,
		})
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}

// UnitVector returns an EmbeddingDim vector with 1 at each listed index, normalized.
func UnitVector(indexes ...int) []float32 {
	v := make([]float32, types.EmbeddingDim)
	for _, i := range indexes {
		v[i] = 1
	}
	if len(indexes) > 1 {
		n := float32(math.Sqrt(float64(len(indexes))))
		for _, i := range indexes {
			v[i] /= n
		}
	}
	return v
}
